package settings

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		anyErr  bool
		keys    int
	}{
		{name: "empty input", input: "", keys: 0},
		{name: "whitespace only", input: " \n\t ", keys: 0},
		{name: "empty object", input: "{}", keys: 0},
		{name: "object with keys", input: `{"model":"opus","hooks":{}}`, keys: 2},
		{name: "array root", input: `[1,2]`, wantErr: ErrNotObject},
		{name: "string root", input: `"x"`, wantErr: ErrNotObject},
		{name: "null root", input: `null`, wantErr: ErrNotObject},
		{name: "truncated", input: `{"a":`, anyErr: true},
		{name: "trailing garbage", input: `{} {}`, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatal("Parse() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if got := len(doc.Root()); got != tt.keys {
				t.Errorf("len(Root()) = %d, want %d", got, tt.keys)
			}
		})
	}
}

func TestHooks(t *testing.T) {
	doc, err := Parse([]byte(`{"hooks":"nope"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, _, err := doc.Hooks(); !errors.Is(err, ErrHooksNotObject) {
		t.Errorf("Hooks() error = %v, want ErrHooksNotObject", err)
	}
	if _, err := doc.EnsureHooks(); !errors.Is(err, ErrHooksNotObject) {
		t.Errorf("EnsureHooks() error = %v, want ErrHooksNotObject", err)
	}

	doc = New()
	if _, ok, _ := doc.Hooks(); ok {
		t.Error("new document should not have hooks")
	}
	hooks, err := doc.EnsureHooks()
	if err != nil {
		t.Fatalf("EnsureHooks() error: %v", err)
	}
	if hooks == nil {
		t.Fatal("EnsureHooks() returned nil map")
	}
	if _, ok, _ := doc.Hooks(); !ok {
		t.Error("EnsureHooks() did not create hooks key")
	}
}

func TestEventAndSetEvent(t *testing.T) {
	doc := New()
	if _, ok := doc.Event("Stop"); ok {
		t.Fatal("Event() on empty document should report absent")
	}

	group := map[string]any{"matcher": "", "hooks": []any{}}
	if err := doc.SetEvent("Stop", []any{group}); err != nil {
		t.Fatalf("SetEvent() error: %v", err)
	}
	v, ok := doc.Event("Stop")
	if !ok {
		t.Fatal("Event() should report present after SetEvent")
	}
	if list, _ := v.([]any); len(list) != 1 {
		t.Errorf("Event() = %v, want single group", v)
	}
}

func TestEventPresence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "no hooks key", input: `{}`, want: false},
		{name: "hooks not object", input: `{"hooks":[]}`, want: false},
		{name: "other event only", input: `{"hooks":{"PreToolUse":[]}}`, want: false},
		{name: "empty list", input: `{"hooks":{"Stop":[]}}`, want: true},
		{name: "null value", input: `{"hooks":{"Stop":null}}`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if _, ok := doc.Event("Stop"); ok != tt.want {
				t.Errorf("Event(Stop) present = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestMarshalPreservesForeignValues(t *testing.T) {
	input := `{
  "big": 12345678901234567890,
  "float": 1.50,
  "cmd": "a && b > c",
  "nested": {"x": [true, null, "y"]}
}`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	s := string(out)

	if !strings.HasSuffix(s, "}\n") {
		t.Errorf("output should end with a newline, got %q", s[len(s)-3:])
	}
	if !strings.Contains(s, `"big": 12345678901234567890`) {
		t.Errorf("large integer lost precision:\n%s", s)
	}
	if !strings.Contains(s, `"float": 1.50`) {
		t.Errorf("number literal changed:\n%s", s)
	}
	if !strings.Contains(s, `"cmd": "a && b > c"`) {
		t.Errorf("command string was escaped:\n%s", s)
	}
	if !strings.Contains(s, "\n  \"cmd\"") {
		t.Errorf("expected two-space indentation:\n%s", s)
	}

	var before, after any
	if err := json.Unmarshal([]byte(input), &before); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &after); err != nil {
		t.Fatal(err)
	}
	b1, _ := json.Marshal(before)
	b2, _ := json.Marshal(after)
	if string(b1) != string(b2) {
		t.Errorf("round trip changed document:\n%s\n%s", b1, b2)
	}
}
