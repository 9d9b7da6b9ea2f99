package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefreshJobWarmsSnapshotAndIndex(t *testing.T) {
	emb := &fakeEmbedder{axes: newTestAxes()}
	engine := newEngineFixture(t, emb, nil)
	job := NewRefreshJob(engine)

	require.Equal(t, "corpus-refresh", job.Name())
	require.NoError(t, job.Run(context.Background()))

	records, indexes, err := engine.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, records)
	require.Equal(t, 1, indexes)
	require.EqualValues(t, 1, emb.encodeCalls.Load())
}
