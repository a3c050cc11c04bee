package jsx

import (
	"sort"
)

// Range is a half-open byte range [Start, End) into the source file.
type Range struct {
	Start int
	End   int
}

// Len returns the number of source bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// SourceLocation represents a position in the source file.
type SourceLocation struct {
	File        string `json:"file"`        // Source file path
	StartLine   int    `json:"startLine"`   // 1-based line number where element starts
	StartColumn int    `json:"startColumn"` // 0-based column where element starts
	EndLine     int    `json:"endLine"`     // 1-based line number where element ends
	EndColumn   int    `json:"endColumn"`   // 0-based column where element ends
}

// Node is implemented by every syntax node in a parsed File.
type Node interface {
	// Range returns the node's source range.
	Range() Range
	node()
}

// Element is a JSX element or fragment. Fragments (<>...</>) have an empty
// Name and Fragment set.
type Element struct {
	Name        string      // Tag name, e.g. "div", "Foo", "Foo.Bar", "svg:rect"
	Attributes  []Attribute // Attributes in source order
	Children    []Node      // *Element, *Text or *ExpressionContainer
	Parent      *Element    // Enclosing element, nil for roots
	SelfClosing bool
	Fragment    bool
	Span        Range
}

// Range implements Node.
func (e *Element) Range() Range { return e.Span }
func (*Element) node()          {}

// NamedAttributes returns the element's non-spread attributes in source order.
func (e *Element) NamedAttributes() []*NamedAttribute {
	var out []*NamedAttribute
	for _, attr := range e.Attributes {
		if named, ok := attr.(*NamedAttribute); ok {
			out = append(out, named)
		}
	}
	return out
}

// Attribute returns the first named attribute called name, or nil.
func (e *Element) Attribute(name string) *NamedAttribute {
	for _, attr := range e.Attributes {
		if named, ok := attr.(*NamedAttribute); ok && named.Name == name {
			return named
		}
	}
	return nil
}

// HasSpread reports whether the element carries a spread attribute.
func (e *Element) HasSpread() bool {
	for _, attr := range e.Attributes {
		if _, ok := attr.(*SpreadAttribute); ok {
			return true
		}
	}
	return false
}

// Attribute is either a *NamedAttribute or a *SpreadAttribute.
type Attribute interface {
	Node
	// Owner returns the element the attribute is written on.
	Owner() *Element
	attribute()
}

// NamedAttribute is a name/value attribute such as id="main" or onClick={fn}.
// Value is nil for boolean-style attributes like <input disabled />.
type NamedAttribute struct {
	Name     string
	NameSpan Range
	Value    Value
	Span     Range
	owner    *Element
}

// Range implements Node.
func (a *NamedAttribute) Range() Range { return a.Span }

// Owner implements Attribute.
func (a *NamedAttribute) Owner() *Element { return a.owner }

// HasValue reports whether the attribute was written with a value.
func (a *NamedAttribute) HasValue() bool { return a.Value != nil }

func (*NamedAttribute) node()      {}
func (*NamedAttribute) attribute() {}

// SpreadAttribute is an attribute object spread into the element, {...props}.
// Its names and values are unknown statically.
type SpreadAttribute struct {
	Argument string     // Source of the spread expression, without the dots
	Elements []*Element // JSX elements appearing inside the argument
	Span     Range
	owner    *Element
}

// Range implements Node.
func (a *SpreadAttribute) Range() Range { return a.Span }

// Owner implements Attribute.
func (a *SpreadAttribute) Owner() *Element { return a.owner }

func (*SpreadAttribute) node()      {}
func (*SpreadAttribute) attribute() {}

// Value is an attribute value: *StringLiteral, *ExpressionContainer or
// *ElementValue.
type Value interface {
	Node
	value()
}

// StringLiteral is a quoted attribute value. Span includes the quotes.
type StringLiteral struct {
	Value string
	Quote byte
	Span  Range
}

// Range implements Node.
func (s *StringLiteral) Range() Range { return s.Span }
func (*StringLiteral) node()          {}
func (*StringLiteral) value()         {}

// ExpressionContainer is a {...} expression, used both as an attribute value
// and as an element child. Span includes the braces.
type ExpressionContainer struct {
	Expression string     // Source between the braces
	Elements   []*Element // JSX elements appearing inside the expression
	Span       Range
}

// Range implements Node.
func (e *ExpressionContainer) Range() Range { return e.Span }
func (*ExpressionContainer) node()          {}
func (*ExpressionContainer) value()         {}

// ElementValue is an element used directly as an attribute value, icon=<Icon />.
type ElementValue struct {
	Element *Element
}

// Range implements Node.
func (v *ElementValue) Range() Range { return v.Element.Span }
func (*ElementValue) node()          {}
func (*ElementValue) value()         {}

// Text is raw text between tags.
type Text struct {
	Value string
	Span  Range
}

// Range implements Node.
func (t *Text) Range() Range { return t.Span }
func (*Text) node()          {}

// File is a parsed source file.
type File struct {
	name     string
	source   []byte
	roots    []*Element
	elements []*Element
	lines    []int
}

func newFile(name string, source []byte) *File {
	lines := []int{0}
	for i, b := range source {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &File{
		name:   name,
		source: source,
		lines:  lines,
	}
}

// Name returns the file name given at parse time.
func (f *File) Name() string {
	return f.name
}

// Source returns the raw source bytes.
func (f *File) Source() []byte {
	return f.source
}

// Roots returns the outermost elements in source order.
func (f *File) Roots() []*Element {
	return f.roots
}

// Elements returns every element in the file ordered by start offset.
func (f *File) Elements() []*Element {
	return f.elements
}

// Attributes returns every attribute in the file, grouped by element in
// Elements order and in source order within an element.
func (f *File) Attributes() []Attribute {
	var out []Attribute
	for _, el := range f.elements {
		out = append(out, el.Attributes...)
	}
	return out
}

// Text returns the source text covered by r.
func (f *File) Text(r Range) string {
	if r.Start < 0 || r.End > len(f.source) || r.Start > r.End {
		return ""
	}
	return string(f.source[r.Start:r.End])
}

// Location converts a byte range into a SourceLocation.
func (f *File) Location(r Range) *SourceLocation {
	startLine, startCol := f.position(r.Start)
	endLine, endCol := f.position(r.End)
	return &SourceLocation{
		File:        f.name,
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// NodeLocation returns the SourceLocation of n.
func (f *File) NodeLocation(n Node) *SourceLocation {
	return f.Location(n.Range())
}

func (f *File) position(offset int) (line, column int) {
	idx := sort.Search(len(f.lines), func(i int) bool {
		return f.lines[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, offset - f.lines[idx]
}
