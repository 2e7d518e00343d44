package pagination

import (
	"fmt"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
)

// ExtractItems returns the page of items of a response. Cursor and timeline
// responses must carry their items field; traditional responses without a
// declared items field yield no items.
func ExtractItems(c methods.Capability, resp Response) ([]any, error) {
	if c.ItemsField == "" {
		if c.Strategy == methods.StrategyTraditional {
			return nil, nil
		}
		return nil, malformed("no items field registered for %s pagination", c.Strategy)
	}
	v, ok := lookup(resp, c.ItemsField)
	if !ok {
		return nil, malformed("response has no %q field", c.ItemsField)
	}
	items, ok := asList(v)
	if !ok {
		return nil, malformed("field %q is %T, not a list", c.ItemsField, v)
	}
	return items, nil
}

// HasMore reports whether another page follows resp, which was requested
// with args.
//
//   - cursor: response_metadata.next_cursor is present and non-empty.
//   - timeline: the page is full (as many items as requested), the server
//     did not answer has_more=false, and the caller's bound (oldest when
//     walking backward, latest when walking forward) is not yet reached.
//   - traditional: page * count < total according to the paging metadata.
func HasMore(c methods.Capability, dir Direction, args Args, resp Response) (bool, error) {
	switch c.Strategy {
	case methods.StrategyCursor:
		return nextCursor(resp) != "", nil

	case methods.StrategyTimeline:
		return timelineHasMore(c, dir, args, resp)

	case methods.StrategyTraditional:
		return traditionalHasMore(c, args, resp)

	default:
		return false, ErrUnsupportedOperation
	}
}

func timelineHasMore(c methods.Capability, dir Direction, args Args, resp Response) (bool, error) {
	items, err := ExtractItems(c, resp)
	if err != nil {
		return false, err
	}
	serverMore, reported := false, false
	if v, ok := resp[methods.KeyHasMore]; ok {
		serverMore, reported = methods.AsBool(v)
	}
	full := len(items) > 0 && len(items) >= requestedSize(args)

	// Advancing oldest past a newest-first page skips everything between
	// the request's oldest bound and the page.
	if dir == Forward && (full || serverMore) && newestFirst(items) {
		return false, malformed("page is ordered newest first; a forward walk would skip older messages")
	}
	if (reported && !serverMore) || !full {
		return false, nil
	}

	oldest, newest, err := timestampBounds(items)
	if err != nil {
		return false, err
	}
	inclusive, _ := methods.AsBool(args[methods.KeyInclusive])
	if dir == Forward {
		if bound, ok := args[methods.KeyLatest]; ok {
			return !reached(newest.ts, bound, 1, inclusive), nil
		}
		return true, nil
	}
	if bound, ok := args[methods.KeyOldest]; ok {
		return !reached(oldest.ts, bound, -1, inclusive), nil
	}
	return true, nil
}

// newestFirst reports whether the first item of a page is newer than its
// last one.
func newestFirst(items []any) bool {
	if len(items) < 2 {
		return false
	}
	_, first, err := timestampBounds(items[:1])
	if err != nil {
		return false
	}
	_, last, err := timestampBounds(items[len(items)-1:])
	if err != nil {
		return false
	}
	return first.ts.Compare(last.ts) > 0
}

// reached reports whether no item can remain between ts and bound in
// direction sign (+1 newer, -1 older). An exclusive bound is reached one
// microsecond early. Unparsable bounds are treated as not reached; they
// are rejected when the session is built.
func reached(ts methods.Timestamp, bound any, sign int, inclusive bool) bool {
	b, err := methods.TimestampOf(bound)
	if err != nil {
		return false
	}
	if !inclusive {
		b = b.AddMicros(int64(-sign))
	}
	return ts.Compare(b)*sign >= 0
}

func traditionalHasMore(c methods.Capability, args Args, resp Response) (bool, error) {
	paging, ok := lookupObject(resp, c.PagingField)
	if !ok {
		return false, malformed("response has no %q paging metadata", c.PagingField)
	}
	page, err := currentPage(c, args, resp)
	if err != nil {
		return false, err
	}

	count, sized := requestedSize(args), explicitSize(args)
	if v, ok := paging[methods.KeyCount]; ok {
		n, ok := methods.AsInt(v)
		if !ok || n < 1 {
			return false, malformed("paging count %v", v)
		}
		count, sized = n, true
	}

	pages, hasPages := 0, false
	if v, ok := paging["pages"]; ok {
		if pages, hasPages = methods.AsInt(v); !hasPages {
			return false, malformed("paging pages %v", v)
		}
	}
	// total needs a page size; pages does not.
	if hasPages && !sized {
		return page < pages, nil
	}

	for _, key := range []string{"total", "total_count"} {
		if v, ok := paging[key]; ok {
			total, ok := methods.AsInt(v)
			if !ok {
				return false, malformed("paging %s %v", key, v)
			}
			return page*count < total, nil
		}
	}
	if hasPages {
		return page < pages, nil
	}
	return false, malformed("paging metadata has neither total nor pages")
}

// currentPage returns the page a traditional response answered: the
// server-reported paging.page, else the requested page, else DefaultPage.
func currentPage(c methods.Capability, args Args, resp Response) (int, error) {
	if paging, ok := lookupObject(resp, c.PagingField); ok {
		if v, ok := paging[methods.KeyPage]; ok {
			page, ok := methods.AsInt(v)
			if !ok || page < 1 {
				return 0, malformed("paging page %v", v)
			}
			return page, nil
		}
	}
	if v, ok := args[methods.KeyPage]; ok {
		if page, ok := methods.AsInt(v); ok && page >= 1 {
			return page, nil
		}
	}
	return methods.DefaultPage, nil
}

// requestedSize is the page size a request asked for: limit, then count,
// then DefaultCount.
func requestedSize(args Args) int {
	if n, ok := sizeArg(args); ok {
		return n
	}
	return methods.DefaultCount
}

// explicitSize reports whether args set the page size themselves.
func explicitSize(args Args) bool {
	_, ok := sizeArg(args)
	return ok
}

func sizeArg(args Args) (int, bool) {
	for _, key := range []string{methods.KeyLimit, methods.KeyCount} {
		if v, ok := args[key]; ok {
			if n, ok := methods.AsInt(v); ok && n > 0 {
				return n, true
			}
		}
	}
	return 0, false
}

// checkOK turns an ok=false response into ErrAPIFailure. Responses without
// an ok field are accepted.
func checkOK(resp Response) error {
	if resp == nil {
		return malformed("nil response")
	}
	v, ok := resp["ok"]
	if !ok {
		return nil
	}
	if success, ok := methods.AsBool(v); ok && success {
		return nil
	}
	if msg, ok := resp["error"].(string); ok && msg != "" {
		return fmt.Errorf("%w: %s", ErrAPIFailure, msg)
	}
	return ErrAPIFailure
}
