package project

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/weslpkg/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	writeFile(t, path, `edition = "unstable_2025_1"`+"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Edition != "unstable_2025_1" {
		t.Errorf("Edition = %q", cfg.Edition)
	}
	if cfg.Root != "shaders" || !slices.Equal(cfg.Include, []string{"shaders/**/*.w[eg]sl"}) {
		t.Errorf("defaults not kept: root=%q include=%v", cfg.Root, cfg.Include)
	}
	if !cfg.Dependencies.Auto {
		t.Error("Dependencies should default to auto")
	}
}

func TestLoadConfigFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	writeFile(t, path, `
edition = "unstable_2025"
include = ["src/**/*.wesl"]
root = "src"
exclude = ["src/test/**"]
package-manager = "npm"
dependencies = ["random_wgsl", "@lygia/shader-utils"]
virtual-libs = ["env", "test"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Root != "src" || cfg.PackageManager != "npm" {
		t.Errorf("got root=%q package-manager=%q", cfg.Root, cfg.PackageManager)
	}
	if !slices.Equal(cfg.Exclude, []string{"src/test/**"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.Dependencies.Auto {
		t.Error("Dependencies should not be auto")
	}
	if want := []string{"random_wgsl", "@lygia/shader-utils"}; !slices.Equal(cfg.Dependencies.Packages, want) {
		t.Errorf("Dependencies = %v, want %v", cfg.Dependencies.Packages, want)
	}
	if !slices.Equal(cfg.VirtualLibs, []string{"env", "test"}) {
		t.Errorf("VirtualLibs = %v", cfg.VirtualLibs)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"bad toml":          `edition = `,
		"bad dependencies":  `dependencies = "manual"`,
		"non-string item":   `dependencies = [1, 2]`,
		"invalid npm name":  `dependencies = ["Bad Name"]`,
		"dependencies type": `dependencies = 3`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFile)
			writeFile(t, path, content)
			_, err := LoadConfig(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("LoadConfig() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFile))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestFindConfig(t *testing.T) {
	t.Run("defaults without toml", func(t *testing.T) {
		dir := t.TempDir()
		info, err := FindConfig(dir, "")
		if err != nil {
			t.Fatal(err)
		}
		if info.File != "" || info.ResolvedRoot != "shaders" {
			t.Errorf("got file=%q root=%q", info.File, info.ResolvedRoot)
		}
	})

	t.Run("project toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFile), `root = "gpu/wesl"`)
		info, err := FindConfig(dir, "")
		if err != nil {
			t.Fatal(err)
		}
		if info.File != filepath.Join(dir, ConfigFile) {
			t.Errorf("File = %q", info.File)
		}
		if info.ResolvedRoot != filepath.Join("gpu", "wesl") {
			t.Errorf("ResolvedRoot = %q", info.ResolvedRoot)
		}
	})

	t.Run("explicit toml elsewhere", func(t *testing.T) {
		dir := t.TempDir()
		explicit := filepath.Join(dir, "config", "wesl.toml")
		writeFile(t, explicit, `root = "../shaders"`)
		info, err := FindConfig(dir, explicit)
		if err != nil {
			t.Fatal(err)
		}
		if info.Dir != filepath.Dir(explicit) || info.ResolvedRoot != "shaders" {
			t.Errorf("got dir=%q root=%q", info.Dir, info.ResolvedRoot)
		}
	})

	t.Run("explicit toml missing", func(t *testing.T) {
		_, err := FindConfig(t.TempDir(), "/no/such/wesl.toml")
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("FindConfig() error = %v", err)
		}
	})
}

func TestFindRoot(t *testing.T) {
	base, err := Canonical(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(base, "app", "package.json"), `{}`)
	writeFile(t, filepath.Join(base, "app", "src", "shaders", "main.wesl"), ``)
	writeFile(t, filepath.Join(base, "lib", "wesl.toml"), ``)
	if err := os.MkdirAll(filepath.Join(base, "lib", "deep", "er"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		start string
		want  string
	}{
		{filepath.Join(base, "app", "src", "shaders"), filepath.Join(base, "app")},
		{filepath.Join(base, "app", "src", "shaders", "main.wesl"), filepath.Join(base, "app")},
		{filepath.Join(base, "app"), filepath.Join(base, "app")},
		{filepath.Join(base, "lib", "deep", "er"), filepath.Join(base, "lib")},
	}
	for _, tt := range tests {
		got, err := FindRoot(tt.start)
		if err != nil {
			t.Fatalf("FindRoot(%q) error: %v", tt.start, err)
		}
		if got != tt.want {
			t.Errorf("FindRoot(%q) = %q, want %q", tt.start, got, tt.want)
		}
	}
}

func TestCanonicalMissing(t *testing.T) {
	_, err := Canonical(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Canonical() error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}
