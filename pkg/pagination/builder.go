package pagination

import (
	"github.com/samber/lo"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
)

// BuildNextRequest computes the arguments of the next call of a session.
//
// For the first call (prior == nil) the base arguments are returned
// unchanged; in cursor mode that means no cursor, i.e. start from the
// beginning. Later calls merge the continuation state derived from the
// prior page into a copy of base:
//
//   - cursor: cursor = response_metadata.next_cursor
//   - timeline: latest (Backward) or oldest (Forward) = boundary timestamp
//     of the prior page, inclusive = false
//   - traditional: page = prior page + 1
//
// base is never modified.
func BuildNextRequest(c methods.Capability, dir Direction, base Args, prior *Page) (Args, error) {
	if prior == nil {
		return base.Clone(), nil
	}

	switch c.Strategy {
	case methods.StrategyCursor:
		cursor := nextCursor(prior.Response)
		if cursor == "" {
			return nil, malformed("no next_cursor to continue from")
		}
		if sent, _ := prior.Args[methods.KeyCursor].(string); sent == cursor {
			return nil, malformed("next_cursor %q repeats the cursor just sent", cursor)
		}
		return lo.Assign(base, Args{methods.KeyCursor: cursor}), nil

	case methods.StrategyTimeline:
		return nextTimelineRequest(dir, base, prior)

	case methods.StrategyTraditional:
		page, err := currentPage(c, prior.Args, prior.Response)
		if err != nil {
			return nil, err
		}
		return lo.Assign(base, Args{methods.KeyPage: page + 1}), nil

	default:
		return nil, ErrUnsupportedOperation
	}
}

func nextTimelineRequest(dir Direction, base Args, prior *Page) (Args, error) {
	oldest, newest, err := timestampBounds(prior.Items)
	if err != nil {
		return nil, err
	}

	key, boundary := methods.KeyLatest, oldest
	if dir == Forward {
		key, boundary = methods.KeyOldest, newest
	}

	if sent, ok := prior.Args[key]; ok {
		prev, err := methods.TimestampOf(sent)
		if err == nil {
			moved := boundary.ts.Compare(prev)
			if (dir == Forward && moved <= 0) || (dir != Forward && moved >= 0) {
				return nil, malformed("timeline did not advance past %s %s", key, prev)
			}
		}
	}

	next := Args{
		key:                  boundary.raw,
		methods.KeyInclusive: false,
	}

	// inclusive applies to both bounds; keep an inclusive caller bound on
	// the far side by widening it one microsecond.
	far := methods.KeyOldest
	if dir == Forward {
		far = methods.KeyLatest
	}
	if inclusive, _ := methods.AsBool(base[methods.KeyInclusive]); inclusive {
		if bound, ok := base[far]; ok {
			ts, err := methods.TimestampOf(bound)
			if err == nil {
				step := int64(-1)
				if dir == Forward {
					step = 1
				}
				next[far] = ts.AddMicros(step).String()
			}
		}
	}

	return lo.Assign(base, next), nil
}

type itemTimestamp struct {
	raw string
	ts  methods.Timestamp
}

// timestampBounds returns the oldest and newest item timestamps of a page.
// Order within the page does not matter.
func timestampBounds(items []any) (itemTimestamp, itemTimestamp, error) {
	var oldest, newest itemTimestamp
	if len(items) == 0 {
		return oldest, newest, malformed("cannot advance timeline past an empty page")
	}
	for i, item := range items {
		obj, ok := asObject(item)
		if !ok {
			return oldest, newest, malformed("item %d is not an object", i)
		}
		raw, ok := obj[methods.KeyTimestamp]
		if !ok {
			return oldest, newest, malformed("item %d has no %s", i, methods.KeyTimestamp)
		}
		ts, err := methods.TimestampOf(raw)
		if err != nil {
			return oldest, newest, malformed("item %d: %v", i, err)
		}
		cur := itemTimestamp{raw: ts.String(), ts: ts}
		if s, ok := raw.(string); ok {
			cur.raw = s
		}
		if i == 0 || ts.Compare(oldest.ts) < 0 {
			oldest = cur
		}
		if i == 0 || ts.Compare(newest.ts) > 0 {
			newest = cur
		}
	}
	return oldest, newest, nil
}
