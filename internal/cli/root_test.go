package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/lineagemap/pkg/config"
	"github.com/matzehuels/lineagemap/pkg/graph"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("MONGO_URI", "")
	return New(io.Discard, LogInfo)
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"layout", "render", "visualize", "serve", "samples", "browse", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestRenderSample(t *testing.T) {
	c := newTestCLI(t)
	if err := run(t, c, "render", "--sample", "stark", "-f", "svg,json,dot", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile("stark.svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("stark.svg = %.60q", svg)
	}
	if _, err := graph.ReadLayoutFile("stark.json"); err != nil {
		t.Errorf("stark.json: %v", err)
	}
	if dot, err := os.ReadFile("stark.dot"); err != nil || !strings.HasPrefix(string(dot), "digraph") {
		t.Errorf("stark.dot = %.40q, %v", dot, err)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	c := newTestCLI(t)
	doc := `{"people":[{"id":"a","name":"Ann"},{"id":"b","name":"Bob"},{"id":"c","name":"Cy"}],
		"relationships":[{"parentId":"a","childId":"c"},{"parentId":"b","childId":"c"}]}`
	if err := os.WriteFile("small.json", []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, c, "layout", "small.json", "--curved"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile("small.layout.json")
	if err != nil {
		t.Fatal(err)
	}
	if l.Family != "small" || l.Stats == nil || l.Stats.Persons != 3 {
		t.Errorf("layout family=%q stats=%+v", l.Family, l.Stats)
	}

	if err := run(t, c, "visualize", "small.layout.json", "--style", "sepia", "-o", "out.svg"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	svg, err := os.ReadFile("out.svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "style-sepia") || !strings.Contains(string(svg), "Ann") {
		t.Errorf("out.svg missing style or name")
	}
}

func TestRenderErrors(t *testing.T) {
	c := newTestCLI(t)
	if err := os.WriteFile("loop.json", []byte(`{"people":[{"id":"a"}],"relationships":[{"parentId":"a","childId":"a"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"render"}, "--sample"},
		{"bad format", []string{"render", "loop.json", "-f", "pdf"}, "invalid format"},
		{"bad style", []string{"render", "loop.json", "--style", "neon"}, "style"},
		{"self parent", []string{"render", "loop.json", "--no-cache"}, "own parent"},
		{"missing file", []string{"render", "nope.json"}, "nope.json"},
		{"unknown sample", []string{"render", "--sample", "targaryen"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, c, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSamplesExport(t *testing.T) {
	c := newTestCLI(t)
	if err := run(t, c, "samples", "export", "kennedy"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := run(t, c, "render", "kennedy.json", "-o", filepath.Join(".", "k.svg"), "--no-cache"); err != nil {
		t.Fatalf("render exported sample: %v", err)
	}
	if _, err := os.Stat("k.svg"); err != nil {
		t.Error(err)
	}
}

func TestCachePath(t *testing.T) {
	c := newTestCLI(t)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != "lineagemap" {
		t.Errorf("cache dir = %q", dir)
	}
	if err := run(t, c, "render", "--sample", "stark"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}

func TestStoreKeyerScopesByLocation(t *testing.T) {
	a := config.Default()
	a.Storage.DataDir = "/srv/a"
	b := config.Default()
	b.Storage.DataDir = "/srv/b"

	ka := storeKeyer(a).DocumentKey("file", "stark")
	kb := storeKeyer(b).DocumentKey("file", "stark")
	if ka == kb {
		t.Fatalf("keys for different data dirs collide: %s", ka)
	}
	if again := storeKeyer(a).DocumentKey("file", "stark"); again != ka {
		t.Errorf("key not stable: %s vs %s", again, ka)
	}

	m := config.Default()
	m.Storage.Backend = config.StorageMongo
	m.Storage.MongoDB = "other"
	if km := storeKeyer(m).DocumentKey("mongo", "stark"); !strings.HasSuffix(km, "doc:mongo:stark") {
		t.Errorf("mongo key = %s", km)
	}
}

func TestCompletionScript(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()
	var out strings.Builder
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out.String(), "lineagemap") {
		t.Error("bash script does not mention lineagemap")
	}
}

func TestFlagCompletions(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	tests := []struct {
		cmd        string
		flag       string
		toComplete string
		want       []string
	}{
		{"layout", "sample", "ken", []string{"kennedy"}},
		{"render", "sample", "st", []string{"stark"}},
		{"render", "format", "svg,j", []string{"svg,json"}},
		{"render", "format", "", []string{"dot", "json", "svg"}},
		{"layout", "type", "n", []string{"nodelink"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd+" --"+tt.flag+" "+tt.toComplete, func(t *testing.T) {
			cmd, _, err := root.Find([]string{tt.cmd})
			if err != nil {
				t.Fatal(err)
			}
			fn, ok := cmd.GetFlagCompletionFunc(tt.flag)
			if !ok {
				t.Fatalf("no completion registered for --%s", tt.flag)
			}
			got, _ := fn(cmd, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	export, _, err := root.Find([]string{"samples", "export"})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := export.ValidArgsFunction(export, nil, "win"); !slices.Equal(got, []string{"windsor"}) {
		t.Errorf("samples export completion = %v", got)
	}
}
