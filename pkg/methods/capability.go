package methods

import "fmt"

// Capability is the pagination capability of one operation. It is a tagged
// variant: Strategy selects the variant and the field names carry the
// metadata that variant needs. Build values with CursorCapability,
// TimelineCapability or TraditionalCapability.
type Capability struct {
	// Strategy is the variant tag.
	Strategy Strategy

	// ItemsField is the response field (dotted path) holding the page of items.
	// Required for cursor pagination, defaults to "messages" for timeline.
	// Optional for traditional paging.
	ItemsField string

	// PagingField is the response field (dotted path) holding traditional
	// paging metadata. Only meaningful for traditional paging.
	PagingField string
}

// None is the capability of an operation that cannot be paginated.
var None = Capability{Strategy: StrategyNone}

// CursorCapability declares cursor pagination with items under itemsField.
func CursorCapability(itemsField string) Capability {
	return Capability{Strategy: StrategyCursor, ItemsField: itemsField}
}

// TimelineCapability declares timeline pagination. An empty itemsField
// selects DefaultTimelineItemsField.
func TimelineCapability(itemsField string) Capability {
	if itemsField == "" {
		itemsField = DefaultTimelineItemsField
	}
	return Capability{Strategy: StrategyTimeline, ItemsField: itemsField}
}

// TraditionalCapability declares page/count paging. An empty pagingField
// selects DefaultPagingField.
func TraditionalCapability(itemsField, pagingField string) Capability {
	if pagingField == "" {
		pagingField = DefaultPagingField
	}
	return Capability{Strategy: StrategyTraditional, ItemsField: itemsField, PagingField: pagingField}
}

// Paginated reports whether the capability supports auto-pagination.
func (c Capability) Paginated() bool {
	return c.Strategy != StrategyNone && c.Strategy != ""
}

// String renders the capability for logs and CLI output.
func (c Capability) String() string {
	switch c.Strategy {
	case StrategyCursor, StrategyTimeline:
		return fmt.Sprintf("%s(%s)", c.Strategy, c.ItemsField)
	case StrategyTraditional:
		return fmt.Sprintf("%s(%s, %s)", c.Strategy, c.ItemsField, c.PagingField)
	default:
		return string(StrategyNone)
	}
}

func (c Capability) validate() error {
	switch c.Strategy {
	case StrategyCursor:
		if c.ItemsField == "" {
			return ErrMissingItemsField
		}
	case StrategyTimeline, StrategyTraditional, StrategyNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}
	return nil
}
