package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pielabel/pkg/buildinfo"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"render", "hit", "serve", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, buildinfo.Version) || !strings.Contains(out, "commit:") {
		t.Errorf("version output = %q", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", dir)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); !strings.HasSuffix(got, appName) || !strings.HasPrefix(got, dir) {
		t.Errorf("cache path = %q", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)

	if _, err := runCLI(t, "render", input, "-f", "json"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestCompleteChartFile(t *testing.T) {
	got, dir := completeChartFile(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || strings.Join(got, ",") != "json,toml" {
		t.Errorf("first arg = %v, %v", got, dir)
	}
	if got, dir := completeChartFile(nil, []string{"a.json"}, ""); got != nil || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second arg = %v, %v", got, dir)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		toComplete string
		want       string
	}{
		{"", "svg,png,json,pdf"},
		{"svg,", "svg,png|svg,json|svg,pdf"},
		{"svg,png,p", "svg,png,json|svg,png,pdf"},
	}
	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.toComplete)
		sep := ","
		if tt.toComplete != "" {
			sep = "|"
		}
		if s := strings.Join(got, sep); s != tt.want {
			t.Errorf("completeFormats(%q) = %q, want %q", tt.toComplete, s, tt.want)
		}
	}
}
