package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gradesys/internal/config"
	"github.com/dmitrijs2005/gradesys/internal/models"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{config.StorageJSON, config.StorageSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			snap, repo, closeFn, err := openStorage(ctx, backend, dir)
			require.NoError(t, err)
			defer closeFn()

			require.NoError(t, snap.Save(ctx, []*models.Student{models.NewStudent("Ada", "x1", 1, 2, 3)}))
			got, err := snap.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "X1", got[0].IDNumber())

			require.NoError(t, repo.Set(ctx, "admin", "hash"))
			h, err := repo.Get(ctx, "admin")
			require.NoError(t, err)
			assert.Equal(t, "hash", h)
		})
	}

	_, _, _, err := openStorage(ctx, "mongo", t.TempDir())
	require.Error(t, err)
}
