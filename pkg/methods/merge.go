package methods

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// LegacySets is the older catalog form: three independently populated
// collections, one per strategy, with nothing preventing an operation from
// appearing in more than one of them.
type LegacySets struct {
	// Cursor maps an operation to the response field holding its items.
	Cursor map[string]string `yaml:"cursor"`

	// Timeline lists timeline-paginated operations.
	Timeline []string `yaml:"timeline"`

	// Traditional lists operations with page/count paging.
	Traditional []string `yaml:"traditional"`
}

// MergeRegistries converts LegacySets into declarations. An operation found
// in several sets resolves in the order cursor, timeline, traditional.
// In strict mode such an overlap is an error instead.
func MergeRegistries(sets LegacySets, strict bool) ([]Declaration, error) {
	seen := make(map[string]Strategy)
	var decls []Declaration

	add := func(op string, c Capability) error {
		if prev, ok := seen[op]; ok {
			if strict {
				return fmt.Errorf("%s: %w: %s and %s", op, ErrConflictingCapability, prev, c.Strategy)
			}
			log.Warn().
				Str("operation", op).
				Str("kept", string(prev)).
				Str("dropped", string(c.Strategy)).
				Msg("Operation registered under several pagination strategies")
			return nil
		}
		seen[op] = c.Strategy
		decls = append(decls, Declare(op, c))
		return nil
	}

	cursorOps := lo.Keys(sets.Cursor)
	slices.Sort(cursorOps)
	for _, op := range cursorOps {
		if err := add(op, CursorCapability(sets.Cursor[op])); err != nil {
			return nil, err
		}
	}
	for _, op := range lo.Uniq(sets.Timeline) {
		if err := add(op, TimelineCapability("")); err != nil {
			return nil, err
		}
	}
	for _, op := range lo.Uniq(sets.Traditional) {
		if err := add(op, TraditionalCapability("", "")); err != nil {
			return nil, err
		}
	}
	return decls, nil
}
