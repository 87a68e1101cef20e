// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads and saves the storage engine's YAML configuration
// file, applying the same defaults as the reference options struct.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
)

// Options controls block geometry, partition thresholds, and cache sizing
// for a LsmCommunity instance. Zero-value fields are not valid; use
// Default or LoadFromYAML, which fills in the documented defaults for anything
// missing from a YAML file.
type Options struct {
	// BlockSize is the fixed byte size of every block in every bucket.
	BlockSize int `yaml:"block_size"`
	// MinBucketSize is the target minimum byte size of a virtual
	// community's bucket, also read as giant_community_boundary by the
	// partitioner.
	MinBucketSize int `yaml:"min_bucket_size"`
	// NumMemGraphLimit bounds the reserved in-memory buffer count.
	NumMemGraphLimit int `yaml:"num_mem_graph_limit"`
	// GiantVertexBoundary is the degree at or above which a vertex is
	// stored as Giant rather than placed in a bucket.
	GiantVertexBoundary int `yaml:"giant_vertex_boundary"`
	// GraphName names the graph; also the workspace subdirectory.
	GraphName string `yaml:"graph_name"`
	// WorkSpaceDir is the root directory holding every graph's workspace.
	WorkSpaceDir string `yaml:"work_space_dir"`
	// BlockCacheCapacity bounds the number of cached blocks.
	BlockCacheCapacity int64 `yaml:"block_cache_capacity"`
	// GiantCacheCapacity bounds the number of cached giant-vertex lists.
	GiantCacheCapacity int64 `yaml:"giant_cache_capacity"`
}

// Default returns the documented default configuration.
func Default() Options {
	return Options{
		BlockSize:           4096,
		MinBucketSize:       8 * 1024 * 1024,
		NumMemGraphLimit:    3,
		GiantVertexBoundary: 128,
		GraphName:           "",
		WorkSpaceDir:        "workspace",
		BlockCacheCapacity:  1 << 20,
		GiantCacheCapacity:  10000,
	}
}

// LoadFromYAML parses path as YAML into Options, seeded with defaults so
// that any field the file omits keeps its default value.
func LoadFromYAML(path string) (Options, error) {
	opts := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, lsmerr.WithKind(err, lsmerr.Config)
		}
		return Options{}, lsmerr.NewIO(err, "opening config %q", path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, lsmerr.WithKind(err, lsmerr.Config)
	}
	return opts, nil
}

// LoadOrDefault behaves like LoadFromYAML, but returns the default
// configuration (and no error) when path does not exist or fails to
// parse.
func LoadOrDefault(path string) Options {
	opts, err := LoadFromYAML(path)
	if err != nil {
		return Default()
	}
	return opts
}

// SaveToYAML writes opts to path as YAML, creating or truncating the
// file.
func SaveToYAML(opts Options, path string) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return lsmerr.WithKind(err, lsmerr.Config)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return lsmerr.NewIO(err, "writing config %q", path)
	}
	return nil
}

// CreateDefaultConfig writes the default configuration to path, failing
// if a file is already there.
func CreateDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return lsmerr.NewConfig("config file already exists: %s", path)
	}
	return SaveToYAML(Default(), path)
}
