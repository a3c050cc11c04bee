package lint

import (
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/jsx"
)

// Context provides rules with contextual information about the current
// position in the file being linted. It supports hierarchical navigation
// from attribute to element to file and a cache shared by all contexts of
// one file.
type Context struct {
	// File is the parsed source being linted.
	File *jsx.File

	// Element is the current element being examined (nil for file context).
	Element *jsx.Element

	// Attribute is the current attribute being examined (nil unless
	// attribute-level).
	Attribute jsx.Attribute

	// Parent provides access to the parent context in the hierarchy.
	Parent *Context

	// cache stores rule-specific data to avoid recomputation.
	// Keys should be prefixed with the rule name to avoid conflicts.
	cache map[string]interface{}
}

// NewContext creates a new root Context for a parsed file.
func NewContext(file *jsx.File) *Context {
	return &Context{
		File:  file,
		cache: make(map[string]interface{}),
	}
}

// NewElementContext creates a new Context for a specific element.
// The cache is shared with the parent context.
func NewElementContext(parent *Context, el *jsx.Element) *Context {
	return &Context{
		File:    parent.File,
		Element: el,
		Parent:  parent,
		cache:   parent.cache,
	}
}

// NewAttributeContext creates a new Context for a specific attribute.
// The cache is shared with the parent context.
func NewAttributeContext(parent *Context, attr jsx.Attribute) *Context {
	return &Context{
		File:      parent.File,
		Element:   attr.Owner(),
		Attribute: attr,
		Parent:    parent,
		cache:     parent.cache,
	}
}

// IsFileLevel returns true if this context is at the file level.
func (ctx *Context) IsFileLevel() bool {
	return ctx.Element == nil && ctx.Attribute == nil
}

// IsElementLevel returns true if this context is at the element level.
func (ctx *Context) IsElementLevel() bool {
	return ctx.Element != nil && ctx.Attribute == nil
}

// IsAttributeLevel returns true if this context is at the attribute level.
func (ctx *Context) IsAttributeLevel() bool {
	return ctx.Attribute != nil
}

// GetCache retrieves a cached value by key.
// Returns nil if the key doesn't exist.
func (ctx *Context) GetCache(key string) interface{} {
	return ctx.cache[key]
}

// SetCache stores a value in the cache with the given key.
func (ctx *Context) SetCache(key string, value interface{}) {
	ctx.cache[key] = value
}

// GetRootContext returns the root context (file-level) by traversing up the parent chain.
func (ctx *Context) GetRootContext() *Context {
	current := ctx
	for current.Parent != nil {
		current = current.Parent
	}
	return current
}

// GetElementContext returns the nearest element context by traversing up the parent chain.
// Returns nil if no element context is found.
func (ctx *Context) GetElementContext() *Context {
	current := ctx
	for current != nil {
		if current.IsElementLevel() {
			return current
		}
		current = current.Parent
	}
	return nil
}

// Location returns the source location of node in the current file.
func (ctx *Context) Location(node jsx.Node) *SourceLocation {
	if ctx.File == nil || node == nil {
		return nil
	}
	return ctx.File.NodeLocation(node)
}

// WalkElements executes fn for each element in the file, in source order.
// Walking stops if fn returns an error.
func (ctx *Context) WalkElements(fn func(elementCtx *Context) error) error {
	if ctx.File == nil {
		return nil
	}

	root := ctx.GetRootContext()
	for _, el := range ctx.File.Elements() {
		if err := fn(NewElementContext(root, el)); err != nil {
			return err
		}
	}
	return nil
}

// WalkAttributes executes fn for each attribute of the current element.
// Walking stops if fn returns an error.
func (ctx *Context) WalkAttributes(fn func(attributeCtx *Context) error) error {
	if ctx.Element == nil {
		return nil
	}

	for _, attr := range ctx.Element.Attributes {
		if err := fn(NewAttributeContext(ctx, attr)); err != nil {
			return err
		}
	}
	return nil
}

// WalkAll executes fn for the file-level context, then for every element
// followed by each of its attributes. Every element and attribute is
// visited exactly once.
// Walking stops if fn returns an error.
func (ctx *Context) WalkAll(fn func(walkCtx *Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}

	return ctx.WalkElements(func(elementCtx *Context) error {
		if err := fn(elementCtx); err != nil {
			return err
		}
		return elementCtx.WalkAttributes(fn)
	})
}
