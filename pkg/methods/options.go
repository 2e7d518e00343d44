package methods

import (
	"fmt"
)

// CursorOptions are the cursor pagination arguments of a request.
// The zero value means "server default limit, start from the beginning".
type CursorOptions struct {
	limit  int
	cursor string
}

// NewCursorOptions validates a cursor limit. A limit of 0 leaves the
// server default in place; otherwise it must be within 1..MaxCursorLimit.
func NewCursorOptions(limit int, cursor string) (CursorOptions, error) {
	if limit < 0 || limit > MaxCursorLimit {
		return CursorOptions{}, fmt.Errorf("%w: limit %d outside 1..%d", ErrInvalidOptions, limit, MaxCursorLimit)
	}
	return CursorOptions{limit: limit, cursor: cursor}, nil
}

// Limit returns the page size, 0 when unset.
func (o CursorOptions) Limit() int { return o.limit }

// Cursor returns the continuation token, empty for the first page.
func (o CursorOptions) Cursor() string { return o.cursor }

// Args renders the options as request arguments. Unset values are omitted.
func (o CursorOptions) Args() map[string]any {
	args := map[string]any{}
	if o.limit > 0 {
		args[KeyLimit] = o.limit
	}
	if o.cursor != "" {
		args[KeyCursor] = o.cursor
	}
	return args
}

// TimelineRange is a timestamp window for timeline pagination.
type TimelineRange struct {
	oldest    *Timestamp
	latest    *Timestamp
	inclusive bool
}

// NewTimelineRange validates a timestamp window. Either bound may be empty.
// When both are given oldest must not be after latest.
func NewTimelineRange(oldest, latest string, inclusive bool) (TimelineRange, error) {
	r := TimelineRange{inclusive: inclusive}
	if oldest != "" {
		ts, err := ParseTimestamp(oldest)
		if err != nil {
			return TimelineRange{}, fmt.Errorf("oldest: %w", err)
		}
		r.oldest = &ts
	}
	if latest != "" {
		ts, err := ParseTimestamp(latest)
		if err != nil {
			return TimelineRange{}, fmt.Errorf("latest: %w", err)
		}
		r.latest = &ts
	}
	if r.oldest != nil && r.latest != nil && r.oldest.Compare(*r.latest) > 0 {
		return TimelineRange{}, fmt.Errorf("%w: oldest %s is after latest %s", ErrInvalidOptions, r.oldest, r.latest)
	}
	return r, nil
}

// Oldest returns the lower bound, if any.
func (r TimelineRange) Oldest() (Timestamp, bool) {
	if r.oldest == nil {
		return Timestamp{}, false
	}
	return *r.oldest, true
}

// Latest returns the upper bound, if any.
func (r TimelineRange) Latest() (Timestamp, bool) {
	if r.latest == nil {
		return Timestamp{}, false
	}
	return *r.latest, true
}

// Inclusive reports whether items exactly on a bound are included.
func (r TimelineRange) Inclusive() bool { return r.inclusive }

// Args renders the window as request arguments.
func (r TimelineRange) Args() map[string]any {
	args := map[string]any{KeyInclusive: r.inclusive}
	if r.oldest != nil {
		args[KeyOldest] = r.oldest.String()
	}
	if r.latest != nil {
		args[KeyLatest] = r.latest.String()
	}
	return args
}

// PagingOptions are the arguments of traditional page/count paging.
type PagingOptions struct {
	page  int
	count int
}

// NewPagingOptions validates page and count. Zero values select
// DefaultPage and DefaultCount.
func NewPagingOptions(page, count int) (PagingOptions, error) {
	if page == 0 {
		page = DefaultPage
	}
	if count == 0 {
		count = DefaultCount
	}
	if page < 1 {
		return PagingOptions{}, fmt.Errorf("%w: page %d must be >= 1", ErrInvalidOptions, page)
	}
	if count < 1 {
		return PagingOptions{}, fmt.Errorf("%w: count %d must be >= 1", ErrInvalidOptions, count)
	}
	return PagingOptions{page: page, count: count}, nil
}

// Page returns the 1-based page number.
func (o PagingOptions) Page() int { return o.page }

// Count returns the page size.
func (o PagingOptions) Count() int { return o.count }

// Args renders the options as request arguments.
func (o PagingOptions) Args() map[string]any {
	return map[string]any{KeyPage: o.page, KeyCount: o.count}
}

// Options are the validated pagination arguments of a request, one value
// per strategy. Arguments of strategies the request does not use keep
// their defaults.
type Options struct {
	Cursor   CursorOptions
	Timeline TimelineRange
	Paging   PagingOptions
}

// ParseOptions reads every pagination argument present in args through the
// constrained constructors above. Arguments that are absent are not
// required; unrelated arguments are ignored.
func ParseOptions(args map[string]any) (Options, error) {
	var opts Options
	var err error
	if opts.Cursor, err = CursorOptionsFrom(args); err != nil {
		return Options{}, err
	}
	if opts.Timeline, err = TimelineRangeFrom(args); err != nil {
		return Options{}, err
	}
	if opts.Paging, err = PagingOptionsFrom(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// ValidateOptions is ParseOptions without the result.
func ValidateOptions(args map[string]any) error {
	_, err := ParseOptions(args)
	return err
}

// CursorOptionsFrom reads limit and cursor from request arguments.
func CursorOptionsFrom(args map[string]any) (CursorOptions, error) {
	limit := 0
	if v, ok := args[KeyLimit]; ok {
		n, ok := AsInt(v)
		if !ok || n < 1 {
			return CursorOptions{}, fmt.Errorf("%w: limit %v", ErrInvalidOptions, v)
		}
		limit = n
	}
	cursor := ""
	if v, ok := args[KeyCursor]; ok {
		s, ok := v.(string)
		if !ok {
			return CursorOptions{}, fmt.Errorf("%w: cursor of type %T", ErrInvalidOptions, v)
		}
		cursor = s
	}
	return NewCursorOptions(limit, cursor)
}

// TimelineRangeFrom reads oldest, latest and inclusive from request arguments.
func TimelineRangeFrom(args map[string]any) (TimelineRange, error) {
	var oldest, latest string
	if v, ok := args[KeyOldest]; ok {
		ts, err := TimestampOf(v)
		if err != nil {
			return TimelineRange{}, fmt.Errorf("oldest: %w", err)
		}
		oldest = ts.String()
	}
	if v, ok := args[KeyLatest]; ok {
		ts, err := TimestampOf(v)
		if err != nil {
			return TimelineRange{}, fmt.Errorf("latest: %w", err)
		}
		latest = ts.String()
	}
	inclusive := false
	if v, ok := args[KeyInclusive]; ok {
		b, ok := AsBool(v)
		if !ok {
			return TimelineRange{}, fmt.Errorf("%w: inclusive %v", ErrInvalidOptions, v)
		}
		inclusive = b
	}
	return NewTimelineRange(oldest, latest, inclusive)
}

// PagingOptionsFrom reads page and count from request arguments.
func PagingOptionsFrom(args map[string]any) (PagingOptions, error) {
	page, count := 0, 0
	if v, ok := args[KeyPage]; ok {
		n, ok := AsInt(v)
		if !ok || n < 1 {
			return PagingOptions{}, fmt.Errorf("%w: page %v", ErrInvalidOptions, v)
		}
		page = n
	}
	if v, ok := args[KeyCount]; ok {
		n, ok := AsInt(v)
		if !ok || n < 1 {
			return PagingOptions{}, fmt.Errorf("%w: count %v", ErrInvalidOptions, v)
		}
		count = n
	}
	return NewPagingOptions(page, count)
}
