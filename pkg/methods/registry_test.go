package methods

import (
	"errors"
	"slices"
	"testing"
)

func TestNewRegistry_Classify(t *testing.T) {
	reg, err := NewRegistry([]Declaration{
		{Operation: "conversations.list", Strategy: StrategyCursor, ItemsField: "channels"},
		{Operation: "channels.history", Strategy: StrategyTimeline},
		{Operation: "files.list", Strategy: StrategyTraditional, ItemsField: "files"},
		{Operation: "chat.postMessage", Strategy: StrategyNone},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		name     string
		op       string
		strategy Strategy
		items    string
		paging   string
	}{
		{name: "cursor", op: "conversations.list", strategy: StrategyCursor, items: "channels"},
		{name: "timeline default items", op: "channels.history", strategy: StrategyTimeline, items: "messages"},
		{name: "traditional default paging", op: "files.list", strategy: StrategyTraditional, items: "files", paging: "paging"},
		{name: "declared none", op: "chat.postMessage", strategy: StrategyNone},
		{name: "unregistered", op: "users.info", strategy: StrategyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := reg.Classify(tt.op)
			if c.Strategy != tt.strategy {
				t.Errorf("Classify(%q).Strategy = %s, want %s", tt.op, c.Strategy, tt.strategy)
			}
			if c.ItemsField != tt.items {
				t.Errorf("Classify(%q).ItemsField = %q, want %q", tt.op, c.ItemsField, tt.items)
			}
			if c.PagingField != tt.paging {
				t.Errorf("Classify(%q).PagingField = %q, want %q", tt.op, c.PagingField, tt.paging)
			}
			if again := reg.Classify(tt.op); again != c {
				t.Errorf("Classify(%q) not idempotent: %v then %v", tt.op, c, again)
			}
		})
	}
}

func TestRegistry_Accessors(t *testing.T) {
	reg, err := NewRegistry([]Declaration{
		Declare("users.list", CursorCapability("members")),
		Declare("im.history", TimelineCapability("")),
		Declare("search.files", TraditionalCapability("files.matches", "files.paging")),
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if field, ok := reg.CursorFieldFor("users.list"); !ok || field != "members" {
		t.Errorf("CursorFieldFor(users.list) = %q, %v", field, ok)
	}
	if _, ok := reg.CursorFieldFor("im.history"); ok {
		t.Error("CursorFieldFor(im.history) should be absent")
	}
	if !reg.SupportsTimeline("im.history") || reg.SupportsTimeline("users.list") {
		t.Error("SupportsTimeline mismatch")
	}
	if !reg.SupportsTraditional("search.files") || reg.SupportsTraditional("unknown.op") {
		t.Error("SupportsTraditional mismatch")
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}

	want := []string{"im.history", "search.files", "users.list"}
	if got := reg.Operations(); !slices.Equal(got, want) {
		t.Errorf("Operations() = %v, want %v", got, want)
	}

	decls := reg.Declarations()
	rebuilt, err := NewRegistry(decls)
	if err != nil {
		t.Fatalf("NewRegistry(Declarations()) error = %v", err)
	}
	for _, op := range want {
		if rebuilt.Classify(op) != reg.Classify(op) {
			t.Errorf("rebuilt registry differs for %s", op)
		}
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		decls   []Declaration
		wantErr error
	}{
		{
			name:    "empty operation",
			decls:   []Declaration{{Strategy: StrategyTimeline}},
			wantErr: ErrEmptyOperation,
		},
		{
			name:    "cursor without items field",
			decls:   []Declaration{{Operation: "users.list", Strategy: StrategyCursor}},
			wantErr: ErrMissingItemsField,
		},
		{
			name:    "unknown strategy",
			decls:   []Declaration{{Operation: "users.list", Strategy: "offset"}},
			wantErr: ErrUnknownStrategy,
		},
		{
			name: "operation in two strategies",
			decls: []Declaration{
				Declare("conversations.history", CursorCapability("messages")),
				Declare("conversations.history", TimelineCapability("")),
			},
			wantErr: ErrConflictingCapability,
		},
		{
			name: "operation declared twice with the same strategy",
			decls: []Declaration{
				Declare("stars.list", CursorCapability("items")),
				Declare("stars.list", CursorCapability("items")),
			},
			wantErr: ErrConflictingCapability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.decls)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewRegistry() error = %v, want %v", err, tt.wantErr)
			}
			if reg != nil {
				t.Error("NewRegistry() should return nil registry on error")
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{input: "cursor", want: StrategyCursor},
		{input: "Timeline", want: StrategyTimeline},
		{input: " traditional ", want: StrategyTraditional},
		{input: "", want: StrategyNone},
		{input: "offset", want: StrategyNone, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrategy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptionKeys_ReturnsCopy(t *testing.T) {
	keys := OptionKeys(StrategyCursor)
	keys[0] = "mutated"
	if OptionKeys(StrategyCursor)[0] != KeyLimit {
		t.Error("OptionKeys should return a copy")
	}
	if len(OptionKeys(StrategyNone)) != 0 {
		t.Error("StrategyNone owns no option keys")
	}
}
