package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/weslpkg/pkg/errors"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "wesl.toml"

// Config is the content of a wesl.toml file.
type Config struct {
	Edition        string       `toml:"edition"`         // WESL edition, e.g. "unstable_2025"
	Include        []string     `toml:"include"`         // Globs for shader files, relative to the toml
	Root           string       `toml:"root"`            // Base directory for shader files
	Exclude        []string     `toml:"exclude"`         // Globs to exclude
	PackageManager string       `toml:"package-manager"` // "npm" or "cargo"
	Dependencies   Dependencies `toml:"dependencies"`    // "auto" or explicit package names
	VirtualLibs    []string     `toml:"virtual-libs"`    // Namespaces supplied by the linker
}

// Dependencies is either "auto" (discover from import statements) or an
// explicit list of npm package names.
type Dependencies struct {
	Auto     bool
	Packages []string
}

// UnmarshalTOML accepts the string "auto" or an array of strings.
func (d *Dependencies) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		if v != "auto" {
			return fmt.Errorf("dependencies: want \"auto\" or a list of packages, got %q", v)
		}
		*d = Dependencies{Auto: true}
		return nil
	case []any:
		pkgs := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("dependencies[%d]: want string, got %T", i, item)
			}
			if err := errors.ValidateNpmPackageName(s); err != nil {
				return fmt.Errorf("dependencies[%d]: %w", i, err)
			}
			pkgs = append(pkgs, s)
		}
		*d = Dependencies{Packages: pkgs}
		return nil
	default:
		return fmt.Errorf("dependencies: want \"auto\" or a list of packages, got %T", v)
	}
}

// DefaultConfig returns the configuration used when no wesl.toml exists.
func DefaultConfig() Config {
	return Config{
		Edition:      "unstable_2025",
		Include:      []string{"shaders/**/*.w[eg]sl"},
		Root:         "shaders",
		Dependencies: Dependencies{Auto: true},
	}
}

// LoadConfig reads a wesl.toml file. Keys absent from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Info describes the configuration in effect for a project directory.
type Info struct {
	File         string // Path of the loaded wesl.toml, "" when defaults are used
	Dir          string // Directory paths in the toml are relative to
	ResolvedRoot string // Config.Root relative to the project directory
	Config       Config
}

// FindConfig loads the wesl.toml for projectDir. An explicit path, when
// given, must exist; otherwise projectDir/wesl.toml is used if present and
// defaults apply if not.
func FindConfig(projectDir, explicit string) (*Info, error) {
	file := explicit
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", file)
		}
	} else if candidate := filepath.Join(projectDir, ConfigFile); isFile(candidate) {
		file = candidate
	}

	info := &Info{File: file, Dir: projectDir, Config: DefaultConfig()}
	if file != "" {
		cfg, err := LoadConfig(file)
		if err != nil {
			return nil, err
		}
		info.Config = cfg
		info.Dir = filepath.Dir(file)
	}

	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "project dir %s", projectDir)
	}
	absDir, err := filepath.Abs(info.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "config dir %s", info.Dir)
	}
	root, err := filepath.Rel(absProject, filepath.Join(absDir, info.Config.Root))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "shader root %s", info.Config.Root)
	}
	info.ResolvedRoot = root
	return info, nil
}
