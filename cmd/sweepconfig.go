package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GeometrySpec names one cache geometry to sweep, sized in bytes.
type GeometrySpec struct {
	Name          string `yaml:"name"`
	L1Size        int    `yaml:"l1_size"`
	L2Size        int    `yaml:"l2_size"`
	Associativity int    `yaml:"associativity"`
}

// SweepConfig describes a manifest of trace files to run against a set of
// cache geometries, one simulation per (trace, geometry) pair.
//
// All top-level sections must be listed to satisfy KnownFields(true) strict
// parsing.
type SweepConfig struct {
	Traces     []string       `yaml:"traces"`
	Geometries []GeometrySpec `yaml:"geometries"`
	OutDir     string         `yaml:"out_dir"`
	Seed       int64          `yaml:"seed"`
	Seeded     bool           `yaml:"seeded"`
	Jobs       int            `yaml:"jobs"`
}

// LoadSweepConfig parses a sweep manifest from path with strict field
// checking: an unrecognized key is a configuration error, not a silent
// no-op.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cmd: reading sweep manifest: %w", err)
	}

	var cfg SweepConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("cmd: parsing sweep manifest %s: %w", path, err)
	}
	if len(cfg.Traces) == 0 {
		return nil, fmt.Errorf("cmd: sweep manifest %s lists no traces", path)
	}
	if len(cfg.Geometries) == 0 {
		return nil, fmt.Errorf("cmd: sweep manifest %s lists no geometries", path)
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = 1
	}
	return &cfg, nil
}
