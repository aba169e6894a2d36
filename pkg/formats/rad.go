package formats

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/parviews/pkg/encoding"
)

// RAD format errors.
var (
	ErrUnexpectedEOF    = errors.New("unexpected end of input")
	ErrBadArgumentCount = errors.New("invalid argument count")
	ErrBadNumber        = errors.New("invalid number")
	ErrBadPolygon       = errors.New("invalid polygon")
)

// InputFormatError reports a scene description that cannot be parsed.
type InputFormatError struct {
	Line   int
	Record string
	Err    error
}

func (e *InputFormatError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Record, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}

// materialTypes lists the Radiance primitive types that define materials.
var materialTypes = map[string]bool{
	"plastic": true, "metal": true, "glass": true, "trans": true,
	"plastic2": true, "metal2": true, "trans2": true,
	"dielectric": true, "interface": true, "mirror": true,
	"light": true, "glow": true, "illum": true, "spotlight": true,
	"BRTDfunc": true, "plasfunc": true, "metfunc": true, "transfunc": true,
	"plasdata": true, "metdata": true, "transdata": true,
	"ashik2": true, "mist": true, "prism1": true, "prism2": true,
	"antimatter": true,
}

// RADPrimitive is one primitive of a Radiance scene description:
//
//	modifier type identifier
//	N str...
//	N int...
//	N real...
type RADPrimitive struct {
	Modifier string
	Type     string
	ID       string
	Strings  []string
	Ints     []int
	Reals    []float64
	Line     int
}

// IsPolygon returns true for polygon primitives.
func (p *RADPrimitive) IsPolygon() bool {
	return p.Type == "polygon"
}

// IsMaterial returns true for material primitives.
func (p *RADPrimitive) IsMaterial() bool {
	return materialTypes[p.Type]
}

// Vertices returns the polygon's vertices as XYZ triples.
func (p *RADPrimitive) Vertices() [][3]float64 {
	verts := make([][3]float64, 0, len(p.Reals)/3)
	for i := 0; i+2 < len(p.Reals); i += 3 {
		verts = append(verts, [3]float64{p.Reals[i], p.Reals[i+1], p.Reals[i+2]})
	}
	return verts
}

// RADCommand is an inline "!command" line. It is recorded but not executed.
type RADCommand struct {
	Line    int
	Command string
}

// RAD represents a parsed Radiance scene description.
type RAD struct {
	Primitives []RADPrimitive
	Commands   []RADCommand
}

// Polygons returns the polygon primitives in file order.
func (r *RAD) Polygons() []*RADPrimitive {
	var polys []*RADPrimitive
	for i := range r.Primitives {
		if r.Primitives[i].IsPolygon() {
			polys = append(polys, &r.Primitives[i])
		}
	}
	return polys
}

// Materials returns the material primitives keyed by identifier.
// A later definition replaces an earlier one, as in Radiance.
func (r *RAD) Materials() map[string]*RADPrimitive {
	mats := make(map[string]*RADPrimitive)
	for i := range r.Primitives {
		if r.Primitives[i].IsMaterial() {
			mats[r.Primitives[i].ID] = &r.Primitives[i]
		}
	}
	return mats
}

// CountByType returns the number of primitives of each type.
func (r *RAD) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, p := range r.Primitives {
		counts[p.Type]++
	}
	return counts
}

type radToken struct {
	text string
	line int
}

// radScanner splits a scene description into whitespace separated tokens,
// dropping comments and collecting command lines.
type radScanner struct {
	tokens   []radToken
	commands []RADCommand
	pos      int
}

func newRADScanner(text string) *radScanner {
	s := &radScanner{}
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "!") {
			s.commands = append(s.commands, RADCommand{Line: lineNo, Command: strings.TrimSpace(trimmed[1:])})
			continue
		}
		for _, field := range strings.Fields(line) {
			if strings.HasPrefix(field, "#") {
				break
			}
			s.tokens = append(s.tokens, radToken{text: field, line: lineNo})
		}
	}
	return s
}

func (s *radScanner) done() bool {
	return s.pos >= len(s.tokens)
}

func (s *radScanner) line() int {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos].line
	}
	if len(s.tokens) > 0 {
		return s.tokens[len(s.tokens)-1].line
	}
	return 1
}

func (s *radScanner) next() (radToken, bool) {
	if s.done() {
		return radToken{}, false
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, true
}

// ParseRAD parses a Radiance scene description from UTF-8 text.
func ParseRAD(data []byte) (*RAD, error) {
	s := newRADScanner(string(data))
	rad := &RAD{Commands: s.commands}

	for !s.done() {
		prim, err := parsePrimitive(s)
		if err != nil {
			return nil, err
		}
		rad.Primitives = append(rad.Primitives, prim)
	}

	return rad, nil
}

// ParseRADFile reads and parses a scene file written in charset.
func ParseRADFile(path, charset string) (*RAD, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RAD file: %w", err)
	}
	text, err := encoding.ToUTF8(data, charset)
	if err != nil {
		return nil, fmt.Errorf("reading RAD file: %w", err)
	}
	return ParseRAD(text)
}

func parsePrimitive(s *radScanner) (RADPrimitive, error) {
	var header [3]string
	line := s.line()
	for i := range header {
		t, ok := s.next()
		if !ok {
			return RADPrimitive{}, &InputFormatError{Line: line, Record: strings.Join(header[:i], " "), Err: ErrUnexpectedEOF}
		}
		header[i] = t.text
	}

	prim := RADPrimitive{Modifier: header[0], Type: header[1], ID: header[2], Line: line}
	record := strings.Join(header[:], " ")
	fail := func(err error) error {
		return &InputFormatError{Line: s.line(), Record: record, Err: err}
	}

	n, err := argCount(s)
	if err != nil {
		return prim, fail(err)
	}
	for i := 0; i < n; i++ {
		t, ok := s.next()
		if !ok {
			return prim, fail(ErrUnexpectedEOF)
		}
		prim.Strings = append(prim.Strings, t.text)
	}

	n, err = argCount(s)
	if err != nil {
		return prim, fail(err)
	}
	for i := 0; i < n; i++ {
		t, ok := s.next()
		if !ok {
			return prim, fail(ErrUnexpectedEOF)
		}
		v, err := strconv.Atoi(t.text)
		if err != nil {
			return prim, fail(fmt.Errorf("%w: %q", ErrBadNumber, t.text))
		}
		prim.Ints = append(prim.Ints, v)
	}

	n, err = argCount(s)
	if err != nil {
		return prim, fail(err)
	}
	for i := 0; i < n; i++ {
		t, ok := s.next()
		if !ok {
			return prim, fail(ErrUnexpectedEOF)
		}
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return prim, fail(fmt.Errorf("%w: %q", ErrBadNumber, t.text))
		}
		prim.Reals = append(prim.Reals, v)
	}

	if prim.IsPolygon() && (len(prim.Reals) < 9 || len(prim.Reals)%3 != 0) {
		return prim, &InputFormatError{
			Line:   line,
			Record: record,
			Err:    fmt.Errorf("%w: %d reals, want a multiple of 3 and at least 9", ErrBadPolygon, len(prim.Reals)),
		}
	}

	return prim, nil
}

func argCount(s *radScanner) (int, error) {
	t, ok := s.next()
	if !ok {
		return 0, ErrUnexpectedEOF
	}
	n, err := strconv.Atoi(t.text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadArgumentCount, t.text)
	}
	return n, nil
}
