package methods

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Declaration is one (operation, strategy, metadata) tuple of a catalog.
type Declaration struct {
	Operation   string   `yaml:"operation" json:"operation"`
	Strategy    Strategy `yaml:"strategy" json:"strategy"`
	ItemsField  string   `yaml:"items,omitempty" json:"items,omitempty"`
	PagingField string   `yaml:"paging,omitempty" json:"paging,omitempty"`
}

// Capability converts the declaration into its tagged variant.
func (d Declaration) Capability() (Capability, error) {
	var c Capability
	switch d.Strategy {
	case StrategyCursor:
		c = CursorCapability(d.ItemsField)
	case StrategyTimeline:
		c = TimelineCapability(d.ItemsField)
	case StrategyTraditional:
		c = TraditionalCapability(d.ItemsField, d.PagingField)
	case StrategyNone, "":
		c = None
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownStrategy, d.Strategy)
	}
	if err := c.validate(); err != nil {
		return None, err
	}
	return c, nil
}

// Declare builds a Declaration from an operation and a capability.
func Declare(operation string, c Capability) Declaration {
	return Declaration{
		Operation:   operation,
		Strategy:    c.Strategy,
		ItemsField:  c.ItemsField,
		PagingField: c.PagingField,
	}
}

// Registry maps operation identifiers to their pagination capability.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	caps map[string]Capability
}

// NewRegistry validates the declarations and builds a Registry.
// Each operation may be declared once; a second declaration fails with
// ErrConflictingCapability even if it repeats the same strategy.
func NewRegistry(decls []Declaration) (*Registry, error) {
	caps := make(map[string]Capability, len(decls))
	for i, d := range decls {
		if d.Operation == "" {
			return nil, fmt.Errorf("declaration %d: %w", i, ErrEmptyOperation)
		}
		c, err := d.Capability()
		if err != nil {
			return nil, fmt.Errorf("declaration %d (%s): %w", i, d.Operation, err)
		}
		if prev, exists := caps[d.Operation]; exists {
			return nil, fmt.Errorf("declaration %d (%s): %w: %s and %s",
				i, d.Operation, ErrConflictingCapability, prev, c)
		}
		caps[d.Operation] = c
	}
	return &Registry{caps: caps}, nil
}

// Lookup returns the capability registered for an operation.
func (r *Registry) Lookup(op string) (Capability, bool) {
	c, ok := r.caps[op]
	return c, ok
}

// Classify resolves the pagination strategy of an operation. Operations
// that are not registered classify as None.
func (r *Registry) Classify(op string) Capability {
	if c, ok := r.caps[op]; ok {
		return c
	}
	return None
}

// CursorFieldFor returns the items field of a cursor-paginated operation.
func (r *Registry) CursorFieldFor(op string) (string, bool) {
	c, ok := r.caps[op]
	if !ok || c.Strategy != StrategyCursor {
		return "", false
	}
	return c.ItemsField, true
}

// SupportsTimeline reports whether op is timeline-paginated.
func (r *Registry) SupportsTimeline(op string) bool {
	return r.caps[op].Strategy == StrategyTimeline
}

// SupportsTraditional reports whether op uses traditional paging.
func (r *Registry) SupportsTraditional(op string) bool {
	return r.caps[op].Strategy == StrategyTraditional
}

// Operations returns the registered operation identifiers in sorted order.
func (r *Registry) Operations() []string {
	ops := lo.Keys(r.caps)
	slices.Sort(ops)
	return ops
}

// Declarations returns the registry content as sorted declarations.
func (r *Registry) Declarations() []Declaration {
	return lo.Map(r.Operations(), func(op string, _ int) Declaration {
		return Declare(op, r.caps[op])
	})
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.caps)
}
