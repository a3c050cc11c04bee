package lint

import (
	"sort"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
)

// Options is a rule's options object: arbitrary keys mapped to lists of
// strings.
type Options map[string][]string

// Factory builds a configured rule from its options.
type Factory func(opts Options) (Rule, error)

type registration struct {
	description string
	factory     Factory
}

// Registry maps rule names to factories.
type Registry struct {
	rules map[string]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]registration),
	}
}

// Register adds a rule factory. Registering the same name twice replaces the
// earlier factory.
func (r *Registry) Register(name, description string, factory Factory) {
	r.rules[name] = registration{
		description: description,
		factory:     factory,
	}
}

// Has reports whether a rule is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.rules[name]
	return ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the description a rule was registered with.
func (r *Registry) Description(name string) string {
	return r.rules[name].description
}

// New builds the rule registered under name.
//
//nolint:ireturn // Factories return the Rule interface.
func (r *Registry) New(name string, opts Options) (Rule, error) {
	reg, ok := r.rules[name]
	if !ok {
		return nil, errors.Newf(errors.CodeNotFound, "unknown rule %q", name)
	}
	rule, err := reg.factory(opts)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to configure rule",
			map[string]interface{}{"rule": name})
	}
	return rule, nil
}
