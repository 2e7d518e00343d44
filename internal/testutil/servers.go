package testutil

import (
	"context"
	"slices"
	"strconv"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

// CursorServer serves items through cursor pagination. Cursors are
// "offset:<n>" strings; the default limit is 100.
func CursorServer(field string, items []any) HandlerFunc {
	return func(_ context.Context, args pagination.Args) (pagination.Response, error) {
		offset := 0
		if c, ok := args[methods.KeyCursor].(string); ok && c != "" {
			n, err := strconv.Atoi(c[len("offset:"):])
			if err != nil {
				return ErrorResponse("invalid_cursor"), nil
			}
			offset = n
		}
		limit := methods.DefaultCount
		if v, ok := args[methods.KeyLimit]; ok {
			limit, _ = methods.AsInt(v)
		}
		end := min(offset+limit, len(items))
		next := ""
		if end < len(items) {
			next = "offset:" + strconv.Itoa(end)
		}
		return CursorPage(field, slices.Clone(items[offset:end]), next), nil
	}
}

// TimelineServer serves messages, newest first, honouring oldest, latest,
// inclusive and count the way a history endpoint does.
func TimelineServer(messages []any) HandlerFunc {
	return timelineServer(messages, func(a, b any) int {
		return tsOf(b).Compare(tsOf(a))
	})
}

// AscendingTimelineServer is like TimelineServer but serves the oldest
// messages of the window first.
func AscendingTimelineServer(messages []any) HandlerFunc {
	return timelineServer(messages, func(a, b any) int {
		return tsOf(a).Compare(tsOf(b))
	})
}

func timelineServer(messages []any, order func(a, b any) int) HandlerFunc {
	sorted := slices.Clone(messages)
	slices.SortFunc(sorted, order)

	return func(_ context.Context, args pagination.Args) (pagination.Response, error) {
		window, err := methods.TimelineRangeFrom(args)
		if err != nil {
			return ErrorResponse("invalid_ts"), nil
		}
		size := methods.DefaultCount
		if v, ok := args[methods.KeyCount]; ok {
			size, _ = methods.AsInt(v)
		}
		oldest, hasOldest := window.Oldest()
		latest, hasLatest := window.Latest()

		var page []any
		for _, m := range sorted {
			ts := tsOf(m)
			if hasLatest {
				c := ts.Compare(latest)
				if c > 0 || (c == 0 && !window.Inclusive()) {
					continue
				}
			}
			if hasOldest {
				c := ts.Compare(oldest)
				if c < 0 || (c == 0 && !window.Inclusive()) {
					continue
				}
			}
			if len(page) == size {
				return TimelinePage(page, true), nil
			}
			page = append(page, m)
		}
		return TimelinePage(page, false), nil
	}
}

// PagingServer serves items through page/count paging under field.
func PagingServer(field string, items []any) HandlerFunc {
	return func(_ context.Context, args pagination.Args) (pagination.Response, error) {
		opts, err := methods.PagingOptionsFrom(args)
		if err != nil {
			return ErrorResponse("invalid_paging"), nil
		}
		start := min((opts.Page()-1)*opts.Count(), len(items))
		end := min(start+opts.Count(), len(items))
		return PagingPage(field, slices.Clone(items[start:end]), opts.Page(), opts.Count(), len(items)), nil
	}
}

func tsOf(item any) methods.Timestamp {
	m, _ := item.(map[string]any)
	ts, _ := methods.TimestampOf(m["ts"])
	return ts
}
