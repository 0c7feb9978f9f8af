package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// runCLIWithLog runs the root command and returns stdout and the log output
// separately.
func runCLIWithLog(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), logs.String(), err
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("layout cached", "labels", 12)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("timestamp missing or not %s: %q", logTimeFormat, line)
	}
	if !strings.Contains(line, "layout cached") || !strings.Contains(line, "labels=12") {
		t.Errorf("line = %q", line)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"debug hidden at info", log.InfoLevel, false},
		{"debug shown at debug", log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, tt.level).Debug("pie label events bound")
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.start = p.start.Add(-1500 * time.Millisecond)
	p.done("Rendered chart", "formats", "svg")

	line := buf.String()
	for _, want := range []string{"Rendered chart", "formats=svg", "elapsed=1.5"} {
		if !strings.Contains(line, want) {
			t.Errorf("progress line %q missing %q", line, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(t.Context()) != log.Default() {
		t.Error("bare context should fall back to log.Default()")
	}

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(t.Context(), l)) != l {
		t.Error("attached logger not returned")
	}
}

func TestHitLogsProgress(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)

	_, logs, err := runCLIWithLog(t, "hit", input, "--x", "210", "--y", "100")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Resolved pointer event", "x=210", "y=100", "source=slice", "elapsed="} {
		if !strings.Contains(logs, want) {
			t.Errorf("log %q missing %q", logs, want)
		}
	}
}

func TestVerboseFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"default level", []string{"hit", input, "--x", "210", "--y", "100"}, false},
		{"long flag", []string{"--verbose", "hit", input, "--x", "210", "--y", "100"}, true},
		{"short flag after command", []string{"hit", input, "--x", "210", "--y", "100", "-v"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, logs, err := runCLIWithLog(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Contains(logs, "resolved pointer event"); got != tt.want {
				t.Errorf("debug line logged = %v, want %v\n%s", got, tt.want, logs)
			}
		})
	}
}
