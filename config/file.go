package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CheckerFileName is the optional checker override file.
const CheckerFileName = ".instapy-check.yaml"

// PackageSpec names a Python distribution and the module used to import it.
type PackageSpec struct {
	Name   string `yaml:"name"`
	Module string `yaml:"module"`
}

// CheckerFile holds values loaded from .instapy-check.yaml. Zero values mean
// "keep the default".
type CheckerFile struct {
	Python         string        `yaml:"python"`
	Browser        string        `yaml:"browser"`
	Driver         string        `yaml:"driver"`
	DisplayServer  string        `yaml:"display_server"`
	Timeout        string        `yaml:"timeout"`
	Packages       []PackageSpec `yaml:"packages"`
	InstallScripts []string      `yaml:"install_scripts"`
}

// Normalize trims values and drops empty list entries. A package without a
// module imports under its own name.
func (fc *CheckerFile) Normalize() {
	if fc == nil {
		return
	}
	fc.Python = strings.TrimSpace(fc.Python)
	fc.Browser = strings.TrimSpace(fc.Browser)
	fc.Driver = strings.TrimSpace(fc.Driver)
	fc.DisplayServer = strings.TrimSpace(fc.DisplayServer)
	fc.Timeout = strings.TrimSpace(fc.Timeout)

	pkgs := make([]PackageSpec, 0, len(fc.Packages))
	for _, p := range fc.Packages {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		module := strings.TrimSpace(p.Module)
		if module == "" {
			module = name
		}
		pkgs = append(pkgs, PackageSpec{Name: name, Module: module})
	}
	fc.Packages = pkgs

	scripts := make([]string, 0, len(fc.InstallScripts))
	for _, s := range fc.InstallScripts {
		if s = strings.TrimSpace(s); s != "" {
			scripts = append(scripts, s)
		}
	}
	fc.InstallScripts = scripts
}

// AutoLoadCheckerFile loads the first checker file found in the working
// directory or the home directory. It returns nil, "", nil when none exists.
func AutoLoadCheckerFile() (*CheckerFile, string, error) {
	candidates := []string{CheckerFileName}
	if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
		candidates = append(candidates, filepath.Join(home, CheckerFileName))
	}
	return loadFirstExisting(candidates)
}

func loadFirstExisting(paths []string) (*CheckerFile, string, error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", path, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", path)
		}

		cfg, err := LoadCheckerFile(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return nil, "", nil
}

// LoadCheckerFile parses a specific YAML file.
func LoadCheckerFile(path string) (*CheckerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := &CheckerFile{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}
