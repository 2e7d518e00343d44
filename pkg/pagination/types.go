package pagination

import (
	"context"
	"maps"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
)

// Args are the arguments of one operation call.
type Args map[string]any

// Clone returns a shallow copy of the arguments. A nil receiver yields an
// empty, non-nil map.
func (a Args) Clone() Args {
	if a == nil {
		return Args{}
	}
	return maps.Clone(a)
}

// Response is the decoded result of one operation call. The paginator reads
// only the success flag, the continuation metadata and the items field.
type Response map[string]any

// Caller invokes a remote operation. It is supplied by the transport layer.
type Caller interface {
	Call(ctx context.Context, operation string, args Args) (Response, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, operation string, args Args) (Response, error)

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, operation string, args Args) (Response, error) {
	return f(ctx, operation, args)
}

// Direction is the walking direction of timeline pagination.
type Direction string

const (
	// Backward walks from newer to older items by lowering latest. Default.
	Backward Direction = "backward"

	// Forward walks from older to newer items by raising oldest. The server
	// must return each page oldest first; a newest-first page fails the
	// session with ErrMalformedResponse.
	Forward Direction = "forward"
)

// Page is one response produced by a pagination session.
type Page struct {
	// Number is the 1-based position of the page within the session.
	Number int

	// Operation is the paginated operation.
	Operation string

	// Strategy is the strategy the session resolved.
	Strategy methods.Strategy

	// Args are the arguments the page was requested with.
	Args Args

	// Response is the raw response.
	Response Response

	// Items are the elements of the page's items field.
	Items []any
}
