// Package config loads tunable defaults from an optional YAML file.
// Flags given explicitly on the command line always win over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ontdemux/internal/cli"
)

// File mirrors the tunable subset of cli.Options. Pointer fields
// distinguish "absent" from zero values.
type File struct {
	Select       *string `yaml:"select"`
	MapQ         *int    `yaml:"mapq-threshold"`
	MaxDistance  *int    `yaml:"max-distance"`
	Margin       *int    `yaml:"margin"`
	MaxUnmatched *int    `yaml:"max-unmatched"`
	Prefix       *string `yaml:"prefix"`
	Compress     *bool   `yaml:"compress"`
	MatchedOnly  *bool   `yaml:"matched-only"`
	Threads      *int    `yaml:"threads"`
}

// Load parses a config file.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	dec := yaml.Unmarshal(data, &f)
	if dec != nil {
		return f, fmt.Errorf("%s: %v", path, dec)
	}
	return f, nil
}

// Apply copies file values into opt for every flag the user did not set
// explicitly, then re-validates the options.
func (f File) Apply(opt *cli.Options) error {
	setString(&opt.Select, f.Select, "select", opt.Explicit)
	setInt(&opt.MapQ, f.MapQ, "mapq-threshold", opt.Explicit)
	setInt(&opt.MaxDistance, f.MaxDistance, "max-distance", opt.Explicit)
	setInt(&opt.Margin, f.Margin, "margin", opt.Explicit)
	setInt(&opt.MaxUnmatched, f.MaxUnmatched, "max-unmatched", opt.Explicit)
	setString(&opt.Prefix, f.Prefix, "prefix", opt.Explicit)
	setBool(&opt.Compress, f.Compress, "compress", opt.Explicit)
	setBool(&opt.MatchedOnly, f.MatchedOnly, "matched-only", opt.Explicit)
	setInt(&opt.Threads, f.Threads, "threads", opt.Explicit)
	return opt.Validate()
}

func setInt(dst *int, src *int, name string, explicit map[string]bool) {
	if src != nil && !explicit[name] {
		*dst = *src
	}
}

func setString(dst *string, src *string, name string, explicit map[string]bool) {
	if src != nil && !explicit[name] {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool, name string, explicit map[string]bool) {
	if src != nil && !explicit[name] {
		*dst = *src
	}
}
