package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestToFields(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want map[string]interface{}
	}{
		{"empty", nil, nil},
		{"pairs", []interface{}{"port", 5555, "worker", "sort"}, map[string]interface{}{"port": 5555, "worker": "sort"}},
		{"odd trailing value dropped", []interface{}{"a", 1, "b"}, map[string]interface{}{"a": 1}},
		{"non-string key skipped", []interface{}{42, "x", "k", "v"}, map[string]interface{}{"k": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toFields(tt.in...)
			if len(got) != len(tt.want) {
				t.Fatalf("toFields() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("toFields()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Wrap(NewLogger(LoggerConfig{
		ServiceName: "filter",
		Level:       "warn",
		Format:      "text",
		Output:      &buf,
	}), "filter")

	l.Info("ignored")
	l.Warn("threshold missing", "command", "filter_by_age")

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "{filter}") || !strings.Contains(out, "command=filter_by_age") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSetDefaults(t *testing.T) {
	defaultsMu.RLock()
	saved := defaults
	defaultsMu.RUnlock()
	t.Cleanup(func() {
		defaultsMu.Lock()
		defaults = saved
		defaultsMu.Unlock()
	})

	var buf bytes.Buffer
	SetDefaults(LoggerConfig{Level: "debug", Format: "text", Output: &buf})

	New("tui").With("state", "menu").Debug("key pressed", "key", "6")

	out := buf.String()
	for _, want := range []string{"[DBG]", "{tui}", "state=menu", "key=6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
