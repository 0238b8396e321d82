package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project holds the settings read from mell.yaml. All fields are optional;
// zero values mean "driver defaults".
type Project struct {
	// Typecheck controls whether inference runs before evaluation.
	// When nil the driver default (enabled) applies.
	Typecheck *bool `yaml:"typecheck"`
	// Paths are extra directories searched when resolving load "..." units,
	// relative to the directory containing mell.yaml.
	Paths []string `yaml:"paths"`
}

// LoadProject reads mell.yaml from dir. A missing file is not an error and
// yields an empty Project.
func LoadProject(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, err
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	// Resolve load paths relative to the config location.
	for i, path := range p.Paths {
		if !filepath.IsAbs(path) {
			p.Paths[i] = filepath.Join(dir, path)
		}
	}
	return &p, nil
}

// TypecheckEnabled reports the effective typecheck setting.
func (p *Project) TypecheckEnabled() bool {
	if p == nil || p.Typecheck == nil {
		return true
	}
	return *p.Typecheck
}
