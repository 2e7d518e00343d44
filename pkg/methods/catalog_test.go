package methods

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	reg, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}

	again, _ := DefaultCatalog()
	if again != reg {
		t.Error("DefaultCatalog() should be built once")
	}

	tests := []struct {
		op       string
		strategy Strategy
		items    string
	}{
		{op: "apps.permissions.resources.list", strategy: StrategyCursor, items: "resources"},
		{op: "conversations.list", strategy: StrategyCursor, items: "channels"},
		{op: "conversations.history", strategy: StrategyCursor, items: "messages"},
		{op: "users.list", strategy: StrategyCursor, items: "members"},
		{op: "mpim.list", strategy: StrategyCursor, items: "groups"},
		{op: "channels.history", strategy: StrategyTimeline, items: "messages"},
		{op: "im.history", strategy: StrategyTimeline, items: "messages"},
		{op: "files.list", strategy: StrategyTraditional, items: "files"},
		{op: "search.messages", strategy: StrategyTraditional, items: "messages.matches"},
		{op: "reactions.list", strategy: StrategyCursor, items: "items"},
		{op: "chat.postMessage", strategy: StrategyNone},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			c := reg.Classify(tt.op)
			if c.Strategy != tt.strategy || c.ItemsField != tt.items {
				t.Errorf("Classify(%q) = %v, want %s(%s)", tt.op, c, tt.strategy, tt.items)
			}
		})
	}

	if reg.Len() != 22 {
		t.Errorf("default catalog has %d operations, want 22", reg.Len())
	}
}

func TestLoadRegistry(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr error
	}{
		{
			name: "valid",
			input: `
operations:
  - operation: widgets.list
    strategy: cursor
    items: widgets
  - operation: widgets.history
    strategy: timeline
`,
			wantLen: 2,
		},
		{
			name:    "empty document",
			input:   "",
			wantLen: 0,
		},
		{
			name: "unknown strategy",
			input: `
operations:
  - operation: widgets.list
    strategy: offset
`,
			wantErr: ErrUnknownStrategy,
		},
		{
			name: "duplicate operation",
			input: `
operations:
  - operation: widgets.list
    strategy: cursor
    items: widgets
  - operation: widgets.list
    strategy: traditional
`,
			wantErr: ErrConflictingCapability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := LoadRegistry(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadRegistry() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadRegistry() error = %v", err)
			}
			if reg.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", reg.Len(), tt.wantLen)
			}
		})
	}
}

func TestLoadCatalog_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader(`
operations:
  - operation: widgets.list
    strategy: cursor
    itmes: widgets
`))
	if err == nil {
		t.Fatal("LoadCatalog() should reject unknown keys")
	}
}

func TestMergeRegistries(t *testing.T) {
	sets := LegacySets{
		Cursor: map[string]string{
			"conversations.history": "messages",
			"stars.list":            "items",
		},
		Timeline:    []string{"conversations.history", "channels.history"},
		Traditional: []string{"stars.list", "files.list"},
	}

	t.Run("lenient first match", func(t *testing.T) {
		decls, err := MergeRegistries(sets, false)
		if err != nil {
			t.Fatalf("MergeRegistries() error = %v", err)
		}
		reg, err := NewRegistry(decls)
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}

		want := map[string]Strategy{
			"conversations.history": StrategyCursor,
			"stars.list":            StrategyCursor,
			"channels.history":      StrategyTimeline,
			"files.list":            StrategyTraditional,
		}
		for op, strategy := range want {
			if got := reg.Classify(op).Strategy; got != strategy {
				t.Errorf("Classify(%q) = %s, want %s", op, got, strategy)
			}
		}
	})

	t.Run("strict rejects overlap", func(t *testing.T) {
		_, err := MergeRegistries(sets, true)
		if !errors.Is(err, ErrConflictingCapability) {
			t.Errorf("MergeRegistries(strict) error = %v, want %v", err, ErrConflictingCapability)
		}
	})

	t.Run("strict accepts disjoint sets", func(t *testing.T) {
		_, err := MergeRegistries(LegacySets{
			Cursor:      map[string]string{"users.list": "members"},
			Timeline:    []string{"im.history"},
			Traditional: []string{"files.list", "files.list"},
		}, true)
		if err != nil {
			t.Errorf("MergeRegistries(strict) error = %v", err)
		}
	})
}

func TestWriteCatalog(t *testing.T) {
	reg := MustDefaultCatalog()

	var buf bytes.Buffer
	if err := WriteCatalog(&buf, reg.Declarations()); err != nil {
		t.Fatalf("WriteCatalog() error = %v", err)
	}

	reloaded, err := LoadRegistry(&buf)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v\n%s", err, buf.String())
	}
	if reloaded.Len() != reg.Len() {
		t.Fatalf("reloaded %d operations, want %d", reloaded.Len(), reg.Len())
	}
	for _, op := range reg.Operations() {
		if got, want := reloaded.Classify(op), reg.Classify(op); got != want {
			t.Errorf("Classify(%q) = %v, want %v", op, got, want)
		}
	}
}
