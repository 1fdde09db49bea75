package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/pipeline"
	"github.com/matzehuels/tutte/pkg/render/sink"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"generate", "embed", "animate", "serve", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command missing %q (have %v)", want, names)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root command missing persistent flag --%s", flag)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"json", []string{"json"}},
		{"svg,dot", []string{"svg", "dot"}},
		{"svg, png ,pdf", []string{"svg", "png", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		count  int
		want   string
	}{
		{"default name", "", "svg", 1, "tutte.svg"},
		{"explicit file", "out/graph.svg", "svg", 1, "out/graph.svg"},
		{"base path", "out/graph", "json", 1, "out/graph.json"},
		{"multiple formats replace extension", "graph.svg", "dot", 2, "graph.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.output, tt.format, tt.count); got != tt.want {
				t.Errorf("artifactPath(%q, %q, %d) = %q, want %q", tt.output, tt.format, tt.count, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "graph")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json", "png"},
		output:    base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	for ext, want := range map[string]string{".svg": "<svg/>", ".json": "{}"} {
		got, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", ext, got, want)
		}
	}
	if _, err := os.Stat(base + ".png"); !os.IsNotExist(err) {
		t.Error("png was written without an artifact")
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutte.toml")
	config := "nodes = 30\nseed = 9\nformats = [\"json\"]\n"
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	c.configPath = path

	var flags optionFlags
	cmd := &cobra.Command{Use: "test"}
	flags.addGenerateFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())
	if err := cmd.Flags().Parse([]string{"--seed", "5"}); err != nil {
		t.Fatal(err)
	}

	opts, err := c.resolve(cmd, &flags)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if opts.Nodes != 30 {
		t.Errorf("Nodes = %d, want 30 from the config file", opts.Nodes)
	}
	if opts.Seed != 5 {
		t.Errorf("Seed = %d, want 5 from the flag", opts.Seed)
	}
	if !slices.Equal(opts.Formats, []string{"json"}) {
		t.Errorf("Formats = %v, want [json] from the config file", opts.Formats)
	}
	if opts.Threshold == 0 {
		t.Error("defaults were not applied")
	}
}

func TestResolveInvalid(t *testing.T) {
	c := newTestCLI()

	var flags optionFlags
	cmd := &cobra.Command{Use: "test"}
	flags.addGenerateFlags(cmd.Flags())
	if err := cmd.Flags().Parse([]string{"--radius=-1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.resolve(cmd, &flags); err == nil {
		t.Error("resolve() accepted a negative radius")
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(planar.Stats{Vertices: 12, Edges: 27, Boundary: 5, Orphans: 1}, 3)
	for _, want := range []string{"12 vertices", "27 edges", "5 boundary", "1 isolated", "seed 3"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(statsLine(planar.Stats{Vertices: 3}, 1), "isolated") {
		t.Error("statsLine() reports isolated vertices when there are none")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			root := newTestCLI().RootCommand()
			var buf bytes.Buffer
			root.SetOut(&buf)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(buf.String(), appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion accepted an unknown shell")
	}
}

func readSnapshot(t *testing.T, path string) sink.Snapshot {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var snap sink.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return snap
}

func TestGenerateCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.json")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"generate", "-n", "10", "--seed", "3", "-f", "json", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	snap := readSnapshot(t, out)
	if len(snap.Vertices) != 10 {
		t.Errorf("vertices = %d, want 10", len(snap.Vertices))
	}
	if snap.Seed != 3 {
		t.Errorf("seed = %d, want 3", snap.Seed)
	}
	if snap.Ticks != 0 {
		t.Errorf("ticks = %d, want 0 for an unrelaxed graph", snap.Ticks)
	}
}

func TestEmbedCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.json")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"embed", "-n", "10", "--seed", "3", "-f", "json", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("embed: %v", err)
	}

	snap := readSnapshot(t, out)
	if snap.Ticks == 0 {
		t.Error("embed ran no relaxation steps")
	}
	if !snap.Converged {
		t.Errorf("embed did not converge within %d steps", pipeline.DefaultMaxSteps)
	}
}

func TestEmbedCommandRejectsBadFormat(t *testing.T) {
	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"embed", "-n", "10", "-f", "gif"})
	if err := root.Execute(); err == nil {
		t.Error("embed accepted an unknown format")
	}
}

func TestGenerateCommandCache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	out := filepath.Join(dir, "graph.svg")

	for range 2 {
		root := newTestCLI().RootCommand()
		root.SetArgs([]string{"generate", "-n", "10", "--seed", "3", "--cache", cacheDir, "-o", out})
		if err := root.Execute(); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("cache holds %d shards, want 1 for a single svg", len(entries))
	}
}
