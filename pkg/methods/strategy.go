package methods

import (
	"fmt"
	"slices"
	"strings"
)

// Strategy identifies a pagination strategy.
type Strategy string

const (
	// StrategyNone means the operation cannot be auto-paginated.
	StrategyNone Strategy = "none"

	// StrategyCursor continues with a server-issued opaque token.
	StrategyCursor Strategy = "cursor"

	// StrategyTimeline continues by moving an oldest/latest timestamp window.
	StrategyTimeline Strategy = "timeline"

	// StrategyTraditional continues by incrementing a 1-based page number.
	StrategyTraditional Strategy = "traditional"
)

// Request and response keys used by the pagination strategies.
const (
	KeyLimit     = "limit"
	KeyCursor    = "cursor"
	KeyOldest    = "oldest"
	KeyLatest    = "latest"
	KeyInclusive = "inclusive"
	KeyPage      = "page"
	KeyCount     = "count"

	KeyResponseMetadata = "response_metadata"
	KeyNextCursor       = "next_cursor"
	KeyTimestamp        = "ts"
	KeyHasMore          = "has_more"
)

// Limits and defaults.
const (
	// MaxCursorLimit is the largest limit a cursor-paginated request accepts.
	MaxCursorLimit = 1000

	// DefaultPage is the first page of traditional paging.
	DefaultPage = 1

	// DefaultCount is the page size assumed when a request does not set one.
	DefaultCount = 100

	// DefaultTimelineItemsField is where timeline operations return items.
	DefaultTimelineItemsField = "messages"

	// DefaultPagingField is where traditional operations report paging metadata.
	DefaultPagingField = "paging"
)

var optionKeys = map[Strategy][]string{
	StrategyCursor:      {KeyLimit, KeyCursor},
	StrategyTimeline:    {KeyOldest, KeyLatest, KeyInclusive},
	StrategyTraditional: {KeyPage, KeyCount},
}

// OptionKeys returns the request argument names owned by a strategy.
// The returned slice is a copy.
func OptionKeys(s Strategy) []string {
	return slices.Clone(optionKeys[s])
}

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, StrategyCursor, StrategyTimeline, StrategyTraditional:
		return true
	default:
		return false
	}
}

// ParseStrategy converts a case-insensitive name into a Strategy.
// An empty name parses as StrategyNone.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if s == "" {
		return StrategyNone, nil
	}
	if !s.Valid() {
		return StrategyNone, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so strategies can be
// decoded directly from catalog files.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
