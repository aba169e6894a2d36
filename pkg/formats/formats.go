// Package formats reads Radiance scene descriptions and writes Wavefront
// OBJ meshes and MTL material libraries.
package formats
