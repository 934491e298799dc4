package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/weslpkg/pkg/errors"
	pkgio "github.com/matzehuels/weslpkg/pkg/io"
)

const randomBundle = `export const weslBundle = {
  name: "random_wgsl",
  edition: "unstable_2025_1",
  modules: {
    "lib.wgsl": "fn pcg_2u_3f(pos: vec2u) -> vec3f { return vec3f(0.0); }",
  },
};
`

func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func randomProject(t *testing.T) string {
	return setupProject(t, map[string]string{
		"package.json":                                `{"name":"app"}`,
		"node_modules/random_wgsl/package.json":       `{"name":"random_wgsl","exports":{".":{"import":"./dist/weslBundle.js"}}}`,
		"node_modules/random_wgsl/dist/weslBundle.js": randomBundle,
	})
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootJSON(t *testing.T) {
	dir := randomProject(t)

	out, err := execute(t, "--json", "-d", dir, "random_wgsl::lib::pcg_2u_3f", "constants::num_lights")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	bundles, err := pkgio.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadJSON: %v\n%s", err, out)
	}
	if len(bundles) != 1 {
		t.Fatalf("got %d bundles, want 1", len(bundles))
	}
	if bundles[0].Name != "random_wgsl" || bundles[0].Edition != "unstable_2025_1" {
		t.Errorf("bundle = %s %s", bundles[0].Name, bundles[0].Edition)
	}
	if _, ok := bundles[0].Modules.Lookup("lib.wgsl"); !ok {
		t.Errorf("lib.wgsl missing from %v", bundles[0].Modules.Paths())
	}
}

func TestRootTable(t *testing.T) {
	dir := randomProject(t)

	out, err := execute(t, "-d", dir, "random_wgsl::lib::pcg_2u_3f")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"random_wgsl", "unstable_2025_1", "lib.wgsl"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRootOutputFile(t *testing.T) {
	dir := randomProject(t)
	path := filepath.Join(t.TempDir(), "bundles.json")

	if _, err := execute(t, "--json", "-d", dir, "-o", path, "random_wgsl::lib"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	bundles, err := pkgio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(bundles) != 1 || bundles[0].Name != "random_wgsl" {
		t.Errorf("unexpected bundles in %s", path)
	}
}

func TestRootConfigDependencies(t *testing.T) {
	dir := randomProject(t)
	toml := "dependencies = [\"random_wgsl\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "wesl.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--json", "-d", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"random_wgsl"`) {
		t.Errorf("output missing random_wgsl bundle:\n%s", out)
	}
}

func TestRootErrors(t *testing.T) {
	dir := randomProject(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no module paths", []string{"-d", dir}, errors.ErrCodeInvalidInput},
		{"nothing resolves", []string{"-d", dir, "missing::thing", "vec3f"}, errors.ErrCodeNotFound},
		{"bad project dir", []string{"-d", filepath.Join(dir, "nope"), "random_wgsl::lib"}, errors.ErrCodeInvalidPath},
		{"bad graph format", []string{"graph", "-d", dir, "-f", "png", "random_wgsl::lib"}, errors.ErrCodeInvalidFormat},
		{"graph resolves nothing", []string{"graph", "-d", dir, "missing::thing"}, errors.ErrCodeNotFound},
		{"bad npm name", []string{"sanitize", "Bad Name"}, errors.ErrCodeInvalidPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestResolveCommand(t *testing.T) {
	dir := randomProject(t)

	out, err := execute(t, "resolve", "-d", dir, "random_wgsl::lib::pcg_2u_3f", "random_wgsl::lib", "vec3f")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], filepath.Join("random_wgsl", "dist", "weslBundle.js")) {
		t.Errorf("resolved to %s", lines[0])
	}
}

func TestResolveCommandJSON(t *testing.T) {
	dir := randomProject(t)

	out, err := execute(t, "resolve", "--json", "-d", dir, "random_wgsl::lib")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "random_wgsl::lib") || !strings.Contains(out, "weslBundle.js") {
		t.Errorf("unexpected JSON:\n%s", out)
	}
}

func TestSanitizeCommand(t *testing.T) {
	out, err := execute(t, "sanitize", "@lygia/shader-utils", "random-wgsl")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "lygia__shader_utils\nrandom_wgsl\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestVariantsCommand(t *testing.T) {
	out, err := execute(t, "variants", "foo__bar_baz::color::rgb")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"@foo/bar_baz/color/rgb",
		"@foo/bar-baz/color/rgb",
		"@foo/bar_baz/color",
		"@foo/bar-baz/color",
		"@foo/bar_baz",
		"@foo/bar-baz",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("variants =\n%s\nwant\n%s", out, strings.Join(want, "\n"))
	}
}

func TestVariantsCommandConfigVirtualLibs(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"wesl.toml": `virtual-libs = ["env"]` + "\n",
	})
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"variants", "-d", dir, "env::lights"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(logs.String(), "built-in") {
		t.Errorf("expected built-in warning for a wesl.toml virtual lib, logs:\n%s", logs.String())
	}
	if !strings.Contains(out.String(), "env/lights") {
		t.Errorf("variants output = %q, want env/lights listed", out.String())
	}
}

func TestGraphCommand(t *testing.T) {
	dir := randomProject(t)

	out, err := execute(t, "graph", "-d", dir, "--detailed", "random_wgsl::lib::pcg_2u_3f")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"digraph", "mod:random_wgsl::lib::pcg_2u_3f", "random_wgsl (unstable_2025_1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	run := func(args ...string) string {
		t.Helper()
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	dir := filepath.Join(home, appName)
	if got := strings.TrimSpace(run("cache", "path")); got != dir {
		t.Errorf("cache path = %s, want %s", got, dir)
	}

	project := randomProject(t)
	run("--json", "-d", project, "random_wgsl::lib")
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("extraction should populate %s (err %v)", dir, err)
	}

	run("cache", "clear")
	entries, err = os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d entries left after cache clear", len(entries))
	}
}

func TestNoCache(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--no-cache", "--json", "-d", randomProject(t), "random_wgsl::lib"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(home, appName)); !os.IsNotExist(err) {
		t.Error("--no-cache should not create the cache directory")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "weslpkg") {
		t.Error("bash completion should mention weslpkg")
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
