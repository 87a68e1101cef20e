// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	opts := Default()
	require.Equal(t, 4096, opts.BlockSize)
	require.Equal(t, 3, opts.NumMemGraphLimit)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_config.yaml")
	original := Default()
	original.BlockSize = 8192
	original.GraphName = "test_graph"

	require.NoError(t, SaveToYAML(original, path))

	loaded, err := LoadFromYAML(path)
	require.NoError(t, err)
	require.Equal(t, 8192, loaded.BlockSize)
	require.Equal(t, "test_graph", loaded.GraphName)
}

func TestLoadFromYAMLFillsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	content := "graph_name: example\nblock_size: 4096\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := LoadFromYAML(path)
	require.NoError(t, err)
	require.Equal(t, "example", loaded.GraphName)
	require.Equal(t, 4096, loaded.BlockSize)
	require.Equal(t, 3, loaded.NumMemGraphLimit, "should keep its default")
}

func TestLoadOrDefaultFallsBackOnMissingFile(t *testing.T) {
	opts := LoadOrDefault(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Equal(t, Default(), opts)
}

func TestCreateDefaultConfigRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, CreateDefaultConfig(path))
	require.Error(t, CreateDefaultConfig(path), "expected an error creating a config file that already exists")
}
