package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/glyph"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	captureStatus(t)

	c := New(io.Discard, log.InfoLevel)
	var out bytes.Buffer
	c.SetOutput(&out)

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShapeCommand(t *testing.T) {
	out, err := runCLI(t, "shape", "rectangle", "-p", "width=3", "-p", "height=2", "--rotate", "90")
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if want := "**\n**\n**\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestShapeCommandDecorate(t *testing.T) {
	out, err := runCLI(t, "shape", "rectangle", "-p", "width=3", "-p", "height=3",
		"--decorate", "solid", "--decor-param", "char=.", "--no-cache")
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if want := "***\n*.*\n***\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestShapeCommandErrors(t *testing.T) {
	if _, err := runCLI(t, "shape", "star"); err == nil || !strings.Contains(err.Error(), "UNKNOWN_SHAPE") {
		t.Errorf("unknown shape: got %v", err)
	}
	if _, err := runCLI(t, "shape", "circle", "-p", "radius"); err == nil || !strings.Contains(err.Error(), "key=value") {
		t.Errorf("bad param: got %v", err)
	}
}

func TestShapeCommandOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "box.svg")
	out, err := runCLI(t, "shape", "rectangle", "-p", "width=2", "-p", "height=2", "-o", path)
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing a file, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("format should follow the .svg extension, got %q", data)
	}
}

func TestTextCommand(t *testing.T) {
	out, err := runCLI(t, "text", "hi", "--no-cache")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if want := glyph.Render("HI").String() + "\n"; out != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}

func TestConfigCharApplies(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cfg := writeFile(t, "config.toml", "[cache]\nbackend = \"none\"\n[render]\nchar = \"o\"\n")

	c := New(io.Discard, log.InfoLevel)
	var out bytes.Buffer
	c.SetOutput(&out)
	captureStatus(t)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfg, "shape", "rectangle", "-p", "width=2", "-p", "height=1"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if out.String() != "oo\n" {
		t.Errorf("got %q, want %q", out.String(), "oo\n")
	}
}

func TestRecipeRunCommand(t *testing.T) {
	path := writeFile(t, "recipe.yaml", `
recipe:
  - op: generate
    shape: rectangle
    params: {width: 2, height: 1}
    storeAs: left
  - op: generate
    shape: rectangle
    params: {width: 1, height: 1, char: "#"}
    storeAs: right
  - op: rightAppend
    target: left
    source: right
    storeAs: out
output: out
`)
	out, err := runCLI(t, "recipe", "run", path)
	if err != nil {
		t.Fatalf("recipe run: %v", err)
	}
	if want := "** #\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRecipeValidateCommand(t *testing.T) {
	good := writeFile(t, "ok.json", `{"recipe":[{"op":"generate","shape":"circle","params":{"radius":1},"storeAs":"a"}],"output":"a"}`)
	if _, err := runCLI(t, "recipe", "validate", good); err != nil {
		t.Errorf("valid recipe: %v", err)
	}

	bad := writeFile(t, "bad.json", `{"recipe":[{"op":"transform","source":"a","type":"rotate","params":{"degrees":45},"storeAs":"b"}],"output":"b"}`)
	_, err := runCLI(t, "recipe", "validate", bad)
	if err == nil || !strings.Contains(err.Error(), "INVALID_RECIPE") {
		t.Errorf("invalid recipe: got %v", err)
	}
}

func TestComposeCommand(t *testing.T) {
	path := writeFile(t, "scene.toml", `
width = 5
height = 3

[[shapes]]
type = "rectangle"
params = { width = 1, height = 1, char = "o" }

[[shapes]]
type = "rectangle"
params = { width = 1, height = 1 }
placement = { anchor = "topRight", char = "x" }
`)
	out, err := runCLI(t, "compose", path, "--no-cache")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if want := "    x\n  o  \n     \n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPlayPlain(t *testing.T) {
	path := writeFile(t, "art.txt", "ab\ncd\n")
	out, err := runCLI(t, "play", path, "--plain", "--delay", "1ms")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if out != "ab\ncd\n" {
		t.Errorf("got %q", out)
	}
}

func TestPlayAutoDetectsRecipe(t *testing.T) {
	path := writeFile(t, "r.json", `{"recipe":[{"op":"generate","shape":"rectangle","params":{"width":2,"height":2},"storeAs":"a"}],"output":"a"}`)
	out, err := runCLI(t, "play", path, "--plain", "--delay", "0s")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if out != "**\n**\n" {
		t.Errorf("got %q", out)
	}
}

func TestPlayInvalidSource(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		args []string
	}{
		{"unknown from", "art.txt", "x", []string{"--from", "video"}},
		{"unreadable auto", "art.json", "{not json", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.body)
			_, err := runCLI(t, append([]string{"play", path, "--plain"}, tt.args...)...)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v (code %q), want %s", err, errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	out, err := runCLI(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"circle", "gradient", "centerHorizontally", "bottomRight", "ABC"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", pairs: nil, want: nil},
		{name: "flat", pairs: []string{"radius=3", "filled=true"}, want: map[string]any{"radius": "3", "filled": "true"}},
		{name: "value with equals", pairs: []string{"text=a=b"}, want: map[string]any{"text": "a=b"}},
		{
			name:  "nested",
			pairs: []string{"start.row=0", "start.col=1", "end.row=4"},
			want: map[string]any{
				"start": map[string]any{"row": "0", "col": "1"},
				"end":   map[string]any{"row": "4"},
			},
		},
		{name: "missing equals", pairs: []string{"radius"}, wantErr: true},
		{name: "empty key", pairs: []string{"=3"}, wantErr: true},
		{name: "scalar then nested", pairs: []string{"start=1", "start.row=0"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPlayModel(t *testing.T) {
	g := grid.Parse("ab\ncd")
	events := make(chan grid.RowEvent)
	m := newPlayModel("art.txt", g.Height(), events, true)

	var model = m
	for ev := range g.Rows() {
		next, cmd := model.Update(rowMsg(ev))
		model = next.(playModel)
		if ev.Done {
			if cmd == nil {
				t.Error("completion with exit set should quit")
			}
			break
		}
		if cmd == nil {
			t.Fatal("model should ask for the next row")
		}
	}

	if !model.done {
		t.Error("model should be done")
	}
	if !reflect.DeepEqual(model.lines, []string{"ab", "cd"}) {
		t.Errorf("lines = %v", model.lines)
	}
	view := model.View()
	for _, want := range []string{"art.txt", "ab", "cd", "2 rows"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
