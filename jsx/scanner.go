package jsx

import (
	"fmt"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
)

// token classes used to decide whether '<' and '/' begin JSX or a regular
// expression (expression position) or are binary operators.
type tokenClass int

const (
	tokStart tokenClass = iota
	tokOperand
	tokOperator
	tokKeyword
)

// keywords after which an expression, and therefore JSX, may follow.
var exprKeywords = map[string]bool{
	"return":     true,
	"yield":      true,
	"await":      true,
	"case":       true,
	"default":    true,
	"else":       true,
	"in":         true,
	"of":         true,
	"typeof":     true,
	"void":       true,
	"delete":     true,
	"throw":      true,
	"new":        true,
	"do":         true,
	"instanceof": true,
}

func (c tokenClass) expressionAllowed() bool {
	return c != tokOperand
}

type parser struct {
	src  []byte
	pos  int
	file *File
}

func newParser(name string, src []byte) *parser {
	return &parser{
		src:  src,
		file: newFile(name, src),
	}
}

func (p *parser) parse() (*File, error) {
	roots, err := p.scanScript(nil, false)
	if err != nil {
		return nil, err
	}
	p.file.roots = roots
	return p.file, nil
}

// errorAt builds a PARSE_FAILED error positioned at offset.
func (p *parser) errorAt(offset int, format string, args ...interface{}) error {
	line, col := p.file.position(offset)
	return errors.Newf(errors.CodeParseFailed, format, args...).
		WithContext("file", p.file.name).
		WithContext("line", line).
		WithContext("column", col)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

// scanScript scans JavaScript source, collecting JSX elements in expression
// position. With untilBrace it stops, without consuming it, at the first
// unbalanced '}'.
func (p *parser) scanScript(parent *Element, untilBrace bool) ([]*Element, error) {
	var found []*Element
	start := p.pos
	depth := 0
	prev := tokStart

	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case isSpace(c):
			p.pos++
		case c == '/' && p.peek(1) == '/':
			p.skipLineComment()
		case c == '/' && p.peek(1) == '*':
			if err := p.skipBlockComment(); err != nil {
				return nil, err
			}
		case c == '"' || c == '\'':
			if err := p.skipString(c); err != nil {
				return nil, err
			}
			prev = tokOperand
		case c == '`':
			els, err := p.skipTemplate(parent)
			if err != nil {
				return nil, err
			}
			found = append(found, els...)
			prev = tokOperand
		case c == '/':
			if prev.expressionAllowed() && p.skipRegex() {
				prev = tokOperand
				continue
			}
			p.pos++
			prev = tokOperator
		case c == '<':
			if prev.expressionAllowed() && p.jsxStartsHere() {
				mark, marked := p.pos, len(p.file.elements)
				el, err := p.parseElement(parent)
				if err != nil {
					if !p.typeParamsAt(mark) {
						return nil, err
					}
					// <T>(x: T) => T in a type position.
					p.pos, p.file.elements = mark+1, p.file.elements[:marked]
					prev = tokOperator
					continue
				}
				found = append(found, el)
				prev = tokOperand
				continue
			}
			p.pos++
			prev = tokOperator
		case c == '{':
			depth++
			p.pos++
			prev = tokOperator
		case c == '}':
			if depth == 0 && untilBrace {
				return found, nil
			}
			depth--
			p.pos++
			prev = tokOperator
		case c == ')' || c == ']':
			p.pos++
			prev = tokOperand
		case isIdentStart(c):
			word := p.readWhile(isIdentPart)
			if exprKeywords[word] {
				prev = tokKeyword
			} else {
				prev = tokOperand
			}
		case isDigit(c):
			p.readWhile(isNumberPart)
			prev = tokOperand
		case (c == '+' || c == '-') && p.peek(1) == c:
			// postfix after an operand, prefix otherwise
			p.pos += 2
			if prev != tokOperand {
				prev = tokOperator
			}
		default:
			p.pos++
			prev = tokOperator
		}
	}

	if untilBrace {
		return nil, p.errorAt(start, "unterminated expression")
	}
	return found, nil
}

// jsxStartsHere reports whether the '<' at p.pos opens a JSX element rather
// than a TypeScript generic parameter list such as <T,> or <T extends U>.
func (p *parser) jsxStartsHere() bool {
	next := p.peek(1)
	if next == '>' {
		return true
	}
	if !isIdentStart(next) {
		return false
	}
	i := p.pos + 1
	for i < len(p.src) && isNamePart(p.src[i]) {
		i++
	}
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	if i < len(p.src) && p.src[i] == ',' {
		return false
	}
	return !strings.HasPrefix(string(p.src[i:min(i+8, len(p.src))]), "extends ")
}

// typeParamsAt reports whether the source at off reads as a generic
// signature, <T>(, which failed to parse as an element.
func (p *parser) typeParamsAt(off int) bool {
	i := off + 1
	if i >= len(p.src) || !isIdentStart(p.src[i]) {
		return false
	}
	for i < len(p.src) && isIdentPart(p.src[i]) {
		i++
	}
	i = p.skipSpaceFrom(i)
	if i >= len(p.src) || p.src[i] != '>' {
		return false
	}
	i = p.skipSpaceFrom(i + 1)
	return i < len(p.src) && p.src[i] == '('
}

func (p *parser) skipSpaceFrom(i int) int {
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	return i
}

func (p *parser) readWhile(pred func(byte) bool) string {
	start := p.pos
	for !p.eof() && pred(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// skipSpaceAndComments skips whitespace and JavaScript comments, which are
// permitted between attributes inside a tag.
func (p *parser) skipSpaceAndComments() error {
	for !p.eof() {
		switch {
		case isSpace(p.src[p.pos]):
			p.pos++
		case p.src[p.pos] == '/' && p.peek(1) == '/':
			p.skipLineComment()
		case p.src[p.pos] == '/' && p.peek(1) == '*':
			if err := p.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.src[p.pos] != '\n' {
		p.pos++
	}
}

func (p *parser) skipBlockComment() error {
	start := p.pos
	end := strings.Index(string(p.src[p.pos+2:]), "*/")
	if end < 0 {
		return p.errorAt(start, "unterminated comment")
	}
	p.pos += 2 + end + 2
	return nil
}

func (p *parser) skipString(quote byte) error {
	start := p.pos
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case quote:
			p.pos++
			return nil
		case '\n':
			return p.errorAt(start, "unterminated string literal")
		default:
			p.pos++
		}
	}
	return p.errorAt(start, "unterminated string literal")
}

// skipTemplate skips a template literal, scanning ${...} substitutions for JSX.
func (p *parser) skipTemplate(parent *Element) ([]*Element, error) {
	var found []*Element
	start := p.pos
	p.pos++
	for !p.eof() {
		switch {
		case p.src[p.pos] == '\\':
			p.pos += 2
		case p.src[p.pos] == '`':
			p.pos++
			return found, nil
		case p.src[p.pos] == '$' && p.peek(1) == '{':
			p.pos += 2
			els, err := p.scanScript(parent, true)
			if err != nil {
				return nil, err
			}
			found = append(found, els...)
			p.pos++ // '}'
		default:
			p.pos++
		}
	}
	return nil, p.errorAt(start, "unterminated template literal")
}

// skipRegex skips a regular expression literal. It returns false, leaving
// p.pos unchanged, if no closing '/' is found on the same line.
func (p *parser) skipRegex() bool {
	i := p.pos + 1
	inClass := false
	for i < len(p.src) {
		switch p.src[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return false
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				p.pos = i + 1
				p.readWhile(isIdentPart)
				return true
			}
		}
		i++
	}
	return false
}

// parseElement parses an element or fragment starting at '<'.
func (p *parser) parseElement(parent *Element) (*Element, error) {
	start := p.pos
	p.pos++ // '<'
	p.skipSpace()

	el := &Element{Parent: parent}
	p.file.elements = append(p.file.elements, el)

	if p.peek(0) == '>' {
		p.pos++
		el.Fragment = true
		if err := p.parseChildren(el, start); err != nil {
			return nil, err
		}
		return el, nil
	}

	el.Name = p.readWhile(isNamePart)
	if el.Name == "" {
		return nil, p.errorAt(p.pos, "expected element name")
	}

	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorAt(start, "unterminated tag <%s>", el.Name)
		}

		c := p.src[p.pos]
		switch {
		case c == '/':
			if p.peek(1) != '>' {
				return nil, p.errorAt(p.pos, "expected '>' after '/' in tag <%s>", el.Name)
			}
			p.pos += 2
			el.SelfClosing = true
			el.Span = Range{Start: start, End: p.pos}
			return el, nil
		case c == '>':
			p.pos++
			if err := p.parseChildren(el, start); err != nil {
				return nil, err
			}
			return el, nil
		case c == '{':
			attr, err := p.parseSpread(el)
			if err != nil {
				return nil, err
			}
			el.Attributes = append(el.Attributes, attr)
		case isIdentStart(c):
			attr, err := p.parseNamedAttribute(el)
			if err != nil {
				return nil, err
			}
			el.Attributes = append(el.Attributes, attr)
		default:
			return nil, p.errorAt(p.pos, "unexpected character %q in tag <%s>", c, el.Name)
		}
	}
}

func (p *parser) parseSpread(owner *Element) (*SpreadAttribute, error) {
	start := p.pos
	p.pos++ // '{'
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(string(p.src[p.pos:]), "...") {
		return nil, p.errorAt(start, "expected spread attribute {...expr} in tag <%s>", owner.Name)
	}
	p.pos += 3
	argStart := p.pos
	els, err := p.scanScript(owner, true)
	if err != nil {
		return nil, err
	}
	arg := strings.TrimSpace(string(p.src[argStart:p.pos]))
	p.pos++ // '}'
	return &SpreadAttribute{
		Argument: arg,
		Elements: els,
		Span:     Range{Start: start, End: p.pos},
		owner:    owner,
	}, nil
}

func (p *parser) parseNamedAttribute(owner *Element) (*NamedAttribute, error) {
	start := p.pos
	name := p.readWhile(isAttrNamePart)
	attr := &NamedAttribute{
		Name:     name,
		NameSpan: Range{Start: start, End: p.pos},
		owner:    owner,
	}

	save := p.pos
	p.skipSpace()
	if p.peek(0) != '=' {
		p.pos = save
		attr.Span = attr.NameSpan
		return attr, nil
	}
	p.pos++
	p.skipSpace()

	value, err := p.parseAttributeValue(owner, name)
	if err != nil {
		return nil, err
	}
	attr.Value = value
	attr.Span = Range{Start: start, End: value.Range().End}
	return attr, nil
}

//nolint:ireturn // Value is a closed variant.
func (p *parser) parseAttributeValue(owner *Element, name string) (Value, error) {
	start := p.pos
	switch c := p.peek(0); c {
	case '"', '\'':
		end := strings.IndexByte(string(p.src[p.pos+1:]), c)
		if end < 0 {
			return nil, p.errorAt(start, "unterminated value for attribute %s", name)
		}
		p.pos += end + 2
		return &StringLiteral{
			Value: string(p.src[start+1 : p.pos-1]),
			Quote: c,
			Span:  Range{Start: start, End: p.pos},
		}, nil
	case '{':
		return p.parseExpressionContainer(owner)
	case '<':
		el, err := p.parseElement(owner)
		if err != nil {
			return nil, err
		}
		return &ElementValue{Element: el}, nil
	default:
		return nil, p.errorAt(start, "invalid value for attribute %s", name)
	}
}

func (p *parser) parseExpressionContainer(parent *Element) (*ExpressionContainer, error) {
	start := p.pos
	p.pos++ // '{'
	els, err := p.scanScript(parent, true)
	if err != nil {
		return nil, err
	}
	expr := string(p.src[start+1 : p.pos])
	p.pos++ // '}'
	return &ExpressionContainer{
		Expression: expr,
		Elements:   els,
		Span:       Range{Start: start, End: p.pos},
	}, nil
}

// parseChildren parses element children up to and including the closing tag.
func (p *parser) parseChildren(el *Element, start int) error {
	for {
		if p.eof() {
			return p.errorAt(start, "unterminated element %s", describe(el))
		}

		switch p.src[p.pos] {
		case '<':
			if p.peek(1) == '/' {
				return p.parseClosingTag(el, start)
			}
			child, err := p.parseElement(el)
			if err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case '{':
			expr, err := p.parseExpressionContainer(el)
			if err != nil {
				return err
			}
			el.Children = append(el.Children, expr)
		default:
			textStart := p.pos
			for !p.eof() && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
				p.pos++
			}
			el.Children = append(el.Children, &Text{
				Value: string(p.src[textStart:p.pos]),
				Span:  Range{Start: textStart, End: p.pos},
			})
		}
	}
}

func (p *parser) parseClosingTag(el *Element, start int) error {
	closeStart := p.pos
	p.pos += 2 // "</"
	p.skipSpace()
	name := p.readWhile(isNamePart)
	p.skipSpace()
	if p.peek(0) != '>' {
		return p.errorAt(closeStart, "malformed closing tag for %s", describe(el))
	}
	p.pos++
	if name != el.Name {
		return p.errorAt(closeStart, "expected closing tag for %s, found </%s>", describe(el), name)
	}
	el.Span = Range{Start: start, End: p.pos}
	return nil
}

func describe(el *Element) string {
	if el.Fragment {
		return "<>"
	}
	return fmt.Sprintf("<%s>", el.Name)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isNumberPart(c byte) bool {
	return isIdentPart(c) || c == '.'
}

// isNamePart matches element name characters, including member (Foo.Bar)
// and namespace (svg:rect) separators.
func isNamePart(c byte) bool {
	return isIdentPart(c) || c == '-' || c == '.' || c == ':'
}

func isAttrNamePart(c byte) bool {
	return isIdentPart(c) || c == '-' || c == ':'
}
