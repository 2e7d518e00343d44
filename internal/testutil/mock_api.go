// Package testutil provides testing utilities for the web API paginator.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

// ErrScriptExhausted is returned when an operation is called more often
// than it has scripted responses.
var ErrScriptExhausted = errors.New("mock api: no scripted response left")

// MockResponse defines one scripted answer of the mock API.
type MockResponse struct {
	Response pagination.Response
	Err      error
	Delay    time.Duration
}

// Call records one invocation of the mock API.
type Call struct {
	Operation string
	Args      pagination.Args
}

// HandlerFunc answers a call of one operation.
type HandlerFunc func(ctx context.Context, args pagination.Args) (pagination.Response, error)

// MockAPI is a configurable in-memory pagination.Caller for testing.
type MockAPI struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	scripts  map[string][]MockResponse
	calls    []Call

	// BeforeCall, if set, runs before every call is answered.
	BeforeCall func(call Call)
}

// NewMockAPI creates a new mock API.
func NewMockAPI() *MockAPI {
	return &MockAPI{
		handlers: make(map[string]HandlerFunc),
		scripts:  make(map[string][]MockResponse),
	}
}

// Call implements pagination.Caller.
func (m *MockAPI) Call(ctx context.Context, operation string, args pagination.Args) (pagination.Response, error) {
	call := Call{Operation: operation, Args: args.Clone()}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	handler, hasHandler := m.handlers[operation]
	var scripted *MockResponse
	if !hasHandler {
		if script := m.scripts[operation]; len(script) > 0 {
			scripted = &script[0]
			m.scripts[operation] = script[1:]
		}
	}
	before := m.BeforeCall
	m.mu.Unlock()

	if before != nil {
		before(call)
	}

	if hasHandler {
		return handler(ctx, args)
	}
	if scripted == nil {
		return nil, fmt.Errorf("%w for %s", ErrScriptExhausted, operation)
	}
	if scripted.Delay > 0 {
		time.Sleep(scripted.Delay)
	}
	return scripted.Response, scripted.Err
}

// SetHandler sets a custom handler for an operation.
func (m *MockAPI) SetHandler(operation string, handler HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[operation] = handler
}

// SetResponses scripts the answers of an operation, consumed in order.
func (m *MockAPI) SetResponses(operation string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[operation] = slices.Clone(responses)
}

// Calls returns the recorded calls.
func (m *MockAPI) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.calls)
}

// CallCount returns the number of calls made to the mock.
func (m *MockAPI) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// Reset clears recorded calls.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// OK wraps a response in a successful MockResponse.
func OK(resp pagination.Response) MockResponse {
	return MockResponse{Response: resp}
}

// Fail creates a MockResponse whose call fails with err.
func Fail(err error) MockResponse {
	return MockResponse{Err: err}
}

// CursorPage builds a cursor-paginated response. An empty next ends the walk.
func CursorPage(field string, items []any, next string) pagination.Response {
	resp := pagination.Response{"ok": true, field: items}
	if next != "" {
		resp[methods.KeyResponseMetadata] = map[string]any{methods.KeyNextCursor: next}
	}
	return resp
}

// TimelinePage builds a timeline response holding messages.
func TimelinePage(messages []any, hasMore bool) pagination.Response {
	return pagination.Response{"ok": true, "messages": messages, methods.KeyHasMore: hasMore}
}

// PagingPage builds a traditional paging response with items under field.
func PagingPage(field string, items []any, page, count, total int) pagination.Response {
	pages := 0
	if count > 0 {
		pages = (total + count - 1) / count
	}
	return pagination.Response{
		"ok":  true,
		field: items,
		"paging": map[string]any{
			"page":  page,
			"count": count,
			"total": total,
			"pages": pages,
		},
	}
}

// ErrorResponse builds an ok=false response.
func ErrorResponse(code string) pagination.Response {
	return pagination.Response{"ok": false, "error": code}
}

// Messages builds message items with the given timestamps.
func Messages(timestamps ...string) []any {
	items := make([]any, len(timestamps))
	for i, ts := range timestamps {
		items[i] = map[string]any{"type": "message", "ts": ts, "text": "message " + ts}
	}
	return items
}

// Numbered builds n items {"id": prefix+index} starting at from.
func Numbered(prefix string, from, n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = map[string]any{"id": prefix + strconv.Itoa(from+i)}
	}
	return items
}
