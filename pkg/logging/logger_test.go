package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// lines decodes every JSON log line written to buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelInfo || cfg.Pretty || cfg.Output == nil {
		t.Errorf("unexpected default config %+v", cfg)
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	emit := func(l zerolog.Logger) {
		l.Debug().Msg("debug")
		l.Info().Msg("info")
		l.Warn().Msg("warn")
		l.Error().Msg("error")
	}

	tests := []struct {
		level LogLevel
		want  []string
	}{
		{LevelDebug, []string{"debug", "info", "warn", "error"}},
		{LevelInfo, []string{"info", "warn", "error"}},
		{LevelWarn, []string{"warn", "error"}},
		{"WARNING", []string{"warn", "error"}},
		{LevelError, []string{"error"}},
		{"bogus", []string{"info", "warn", "error"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			buf := &bytes.Buffer{}
			emit(Setup(Config{Level: tt.level, Output: buf}))

			got := lines(t, buf)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines, want %d: %s", len(got), len(tt.want), buf.String())
			}
			for i, m := range got {
				if m["message"] != tt.want[i] || m["level"] != tt.want[i] {
					t.Errorf("line %d = %v, want level/message %q", i, m, tt.want[i])
				}
				if _, ok := m["time"]; !ok {
					t.Errorf("line %d has no timestamp", i)
				}
			}
		})
	}
}

func TestSetup_Pretty(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelInfo, Pretty: true, Output: buf})

	logger.Info().Str("source", "A").Msg("page assembled")

	output := buf.String()
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("Expected console output, got JSON %q", output)
	}
	if !strings.Contains(output, "page assembled") || !strings.Contains(output, "source=") {
		t.Errorf("Expected message and field in output, got %q", output)
	}
}

func TestNewLogger_Component(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	l := NewLogger("plan-cache")
	l.Info().Int("page", 3).Msg("resolved")

	got := lines(t, buf)
	if len(got) != 1 {
		t.Fatalf("got %d lines, want 1", len(got))
	}
	if got[0]["component"] != "plan-cache" || got[0]["page"] != float64(3) {
		t.Errorf("unexpected fields %v", got[0])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", "", true},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_LeavesGlobalLoggerAlone(t *testing.T) {
	global := &bytes.Buffer{}
	Setup(Config{Level: LevelDebug, Output: global})

	local := &bytes.Buffer{}
	logger := New(Config{Level: LevelWarn, Output: local})
	logger.Info().Msg("filtered")
	logger.Warn().Msg("kept")

	got := lines(t, local)
	if len(got) != 1 || got[0]["message"] != "kept" {
		t.Errorf("local output = %s", local.String())
	}
	if global.Len() != 0 {
		t.Errorf("New wrote to the global logger: %s", global.String())
	}

	l := NewLogger("still-global")
	l.Debug().Msg("global debug")
	if !strings.Contains(global.String(), "global debug") {
		t.Errorf("global logger level changed by New: %q", global.String())
	}
}
