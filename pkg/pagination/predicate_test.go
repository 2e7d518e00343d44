package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/webapi-methods/internal/testutil"
	"github.com/Sternrassler/webapi-methods/pkg/methods"
	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

func TestHasMore(t *testing.T) {
	cursor := methods.CursorCapability("members")
	timeline := methods.TimelineCapability("")
	traditional := methods.TraditionalCapability("files", "")

	tests := []struct {
		name       string
		capability methods.Capability
		direction  pagination.Direction
		args       pagination.Args
		resp       pagination.Response
		want       bool
	}{
		{
			name:       "cursor present",
			capability: cursor,
			resp:       testutil.CursorPage("members", nil, "abc"),
			want:       true,
		},
		{
			name:       "cursor empty",
			capability: cursor,
			resp:       pagination.Response{"members": []any{}, "response_metadata": map[string]any{"next_cursor": ""}},
			want:       false,
		},
		{
			name:       "cursor metadata absent",
			capability: cursor,
			resp:       pagination.Response{"members": []any{}},
			want:       false,
		},
		{
			name:       "timeline full page",
			capability: timeline,
			args:       pagination.Args{"count": 2},
			resp:       pagination.Response{"messages": testutil.Messages("1500000002", "1500000001")},
			want:       true,
		},
		{
			name:       "timeline short page",
			capability: timeline,
			args:       pagination.Args{"count": 3},
			resp:       pagination.Response{"messages": testutil.Messages("1500000002", "1500000001")},
			want:       false,
		},
		{
			name:       "timeline default size",
			capability: timeline,
			resp:       pagination.Response{"messages": testutil.Messages("1500000002", "1500000001")},
			want:       false,
		},
		{
			name:       "timeline server says no more",
			capability: timeline,
			args:       pagination.Args{"count": 2},
			resp:       testutil.TimelinePage(testutil.Messages("1500000002", "1500000001"), false),
			want:       false,
		},
		{
			name:       "timeline backward reached oldest",
			capability: timeline,
			args:       pagination.Args{"count": 2, "oldest": "1500000001"},
			resp:       pagination.Response{"messages": testutil.Messages("1500000002", "1500000001")},
			want:       false,
		},
		{
			name:       "timeline backward inclusive bound not yet passed",
			capability: timeline,
			args:       pagination.Args{"count": 2, "oldest": "1500000001", "inclusive": true},
			resp:       pagination.Response{"messages": testutil.Messages("1500000003", "1500000002")},
			want:       true,
		},
		{
			name:       "timeline backward one microsecond above exclusive bound",
			capability: timeline,
			args:       pagination.Args{"count": 2, "oldest": "1500000001.999999"},
			resp:       pagination.Response{"messages": testutil.Messages("1500000003", "1500000002")},
			want:       false,
		},
		{
			name:       "timeline forward reached latest",
			capability: timeline,
			direction:  pagination.Forward,
			args:       pagination.Args{"count": 2, "latest": "1500000002"},
			resp:       pagination.Response{"messages": testutil.Messages("1500000001", "1500000002")},
			want:       false,
		},
		{
			name:       "timeline forward before latest",
			capability: timeline,
			direction:  pagination.Forward,
			args:       pagination.Args{"count": 2, "latest": "1500000009"},
			resp:       pagination.Response{"messages": testutil.Messages("1500000001", "1500000002")},
			want:       true,
		},
		{
			name:       "timeline forward short newest-first page",
			capability: timeline,
			direction:  pagination.Forward,
			args:       pagination.Args{"count": 3},
			resp:       pagination.Response{"messages": testutil.Messages("1500000002", "1500000001")},
			want:       false,
		},
		{
			name:       "traditional middle page",
			capability: traditional,
			resp:       testutil.PagingPage("files", nil, 2, 100, 250),
			want:       true,
		},
		{
			name:       "traditional partial last page",
			capability: traditional,
			resp:       testutil.PagingPage("files", nil, 3, 100, 250),
			want:       false,
		},
		{
			name:       "traditional exact last page",
			capability: traditional,
			resp:       testutil.PagingPage("files", nil, 2, 100, 200),
			want:       false,
		},
		{
			name:       "traditional total_count from JSON",
			capability: traditional,
			resp:       pagination.Response{"paging": map[string]any{"page": float64(1), "count": float64(10), "total_count": float64(11)}},
			want:       true,
		},
		{
			name:       "traditional total and pages without page size",
			capability: traditional,
			args:       pagination.Args{"page": 2},
			resp:       pagination.Response{"paging": map[string]any{"page": 2, "total": 100, "pages": 5}},
			want:       true,
		},
		{
			name:       "traditional requested count uses total",
			capability: traditional,
			args:       pagination.Args{"page": 2, "count": 20},
			resp:       pagination.Response{"paging": map[string]any{"page": 2, "total": 40, "pages": 5}},
			want:       false,
		},
		{
			name:       "traditional pages only",
			capability: traditional,
			args:       pagination.Args{"page": 3},
			resp:       pagination.Response{"paging": map[string]any{"pages": 4}},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.direction
			if dir == "" {
				dir = pagination.Backward
			}
			got, err := pagination.HasMore(tt.capability, dir, tt.args, tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasMore_ForwardNewestFirstPage(t *testing.T) {
	timeline := methods.TimelineCapability("")

	tests := []struct {
		name string
		args pagination.Args
		resp pagination.Response
	}{
		{
			name: "full page",
			args: pagination.Args{"count": 2, "oldest": "1500000000"},
			resp: pagination.Response{"messages": testutil.Messages("1500000009", "1500000008")},
		},
		{
			name: "short page with has_more",
			args: pagination.Args{"count": 5, "oldest": "1500000000"},
			resp: testutil.TimelinePage(testutil.Messages("1500000009", "1500000008"), true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.HasMore(timeline, pagination.Forward, tt.args, tt.resp)
			assert.ErrorIs(t, err, pagination.ErrMalformedResponse)

			_, err = pagination.HasMore(timeline, pagination.Backward, tt.args, tt.resp)
			assert.NoError(t, err, "newest first is the expected order walking backward")
		})
	}
}

func TestExtractItems(t *testing.T) {
	items, err := pagination.ExtractItems(methods.TraditionalCapability("messages.matches", "messages.paging"), pagination.Response{
		"messages": map[string]any{"matches": []any{"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, items)

	items, err = pagination.ExtractItems(methods.TraditionalCapability("", ""), pagination.Response{})
	require.NoError(t, err)
	assert.Nil(t, items)

	_, err = pagination.ExtractItems(methods.CursorCapability("channels"), pagination.Response{"ok": true})
	assert.ErrorIs(t, err, pagination.ErrMalformedResponse)

	items, err = pagination.ExtractItems(methods.CursorCapability("channels"), pagination.Response{
		"channels": []map[string]any{{"id": "C1"}},
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
