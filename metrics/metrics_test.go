// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNewRegistersEveryCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.IncBlockCacheHit()
	m.IncBlockCacheHit()
	m.IncBlockCacheMiss()
	require.Equal(t, float64(2), counterValue(t, m.BlockCacheHits))
	require.Equal(t, float64(1), counterValue(t, m.BlockCacheMisses))

	m.AddDeltaOps(5)
	require.Equal(t, float64(5), counterValue(t, m.DeltaOpsAppended))
}

func TestNewFailsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err, "expected an error registering the same collectors twice on one registry")
}

func TestNewNoOpMethodsDoNotPanic(t *testing.T) {
	m := NewNoOp()
	m.IncBlockCacheHit()
	m.IncBlockCacheMiss()
	m.IncGiantCacheHit()
	m.IncGiantCacheMiss()
	m.IncBucketRead()
	m.IncDeltaMerge()
	m.AddDeltaOps(3)
	m.ObserveBFS(0.5)
	m.ObserveWCC(0.5)
	m.SetWarmUpBlocks(10)
}
