package jsx

// Visitor defines the interface for traversing a parsed File.
// Return an error to stop traversal early.
type Visitor interface {
	// VisitElement is called for each element and fragment.
	VisitElement(el *Element) error

	// VisitAttribute is called for each attribute, after its owner element.
	VisitAttribute(attr Attribute) error

	// VisitText is called for each text child.
	VisitText(text *Text) error

	// VisitExpression is called for each expression container, both as a
	// child and as an attribute value.
	VisitExpression(expr *ExpressionContainer) error
}

// BaseVisitor provides default no-op implementations of all Visitor methods.
// Embed this struct to only override the methods you need.
type BaseVisitor struct{}

// VisitElement is a no-op implementation.
func (v *BaseVisitor) VisitElement(el *Element) error {
	return nil
}

// VisitAttribute is a no-op implementation.
func (v *BaseVisitor) VisitAttribute(attr Attribute) error {
	return nil
}

// VisitText is a no-op implementation.
func (v *BaseVisitor) VisitText(text *Text) error {
	return nil
}

// VisitExpression is a no-op implementation.
func (v *BaseVisitor) VisitExpression(expr *ExpressionContainer) error {
	return nil
}

// Walk traverses the file depth-first. For each element it visits the
// element, then all of its attributes, then elements nested in attribute
// values, then its children in order.
func Walk(f *File, v Visitor) error {
	for _, root := range f.roots {
		if err := walkElement(root, v); err != nil {
			return err
		}
	}
	return nil
}

func walkElement(el *Element, v Visitor) error {
	if err := v.VisitElement(el); err != nil {
		return err
	}

	for _, attr := range el.Attributes {
		if err := v.VisitAttribute(attr); err != nil {
			return err
		}
	}

	for _, attr := range el.Attributes {
		switch a := attr.(type) {
		case *NamedAttribute:
			if err := walkValue(a.Value, v); err != nil {
				return err
			}
		case *SpreadAttribute:
			if err := walkElements(a.Elements, v); err != nil {
				return err
			}
		}
	}

	for _, child := range el.Children {
		var err error
		switch c := child.(type) {
		case *Element:
			err = walkElement(c, v)
		case *Text:
			err = v.VisitText(c)
		case *ExpressionContainer:
			err = walkExpression(c, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func walkValue(value Value, v Visitor) error {
	switch val := value.(type) {
	case *ExpressionContainer:
		return walkExpression(val, v)
	case *ElementValue:
		return walkElement(val.Element, v)
	default:
		return nil
	}
}

func walkExpression(expr *ExpressionContainer, v Visitor) error {
	if err := v.VisitExpression(expr); err != nil {
		return err
	}
	return walkElements(expr.Elements, v)
}

func walkElements(els []*Element, v Visitor) error {
	for _, el := range els {
		if err := walkElement(el, v); err != nil {
			return err
		}
	}
	return nil
}
