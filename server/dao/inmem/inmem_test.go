package inmem_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfield/transpas/server/dao"
	"github.com/wrenfield/transpas/server/dao/inmem"
)

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	store := inmem.NewDatastore()
	defer store.Close()

	created, err := store.Translations().Create(context.Background(), dao.Translation{
		Source: "begin end.",
		Target: "class Program {}",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestGetByID_NotFound(t *testing.T) {
	store := inmem.NewDatastore()
	defer store.Close()

	_, err := store.Translations().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestGetByID_RoundTrips(t *testing.T) {
	store := inmem.NewDatastore()
	defer store.Close()

	created, err := store.Translations().Create(context.Background(), dao.Translation{Source: "x"})
	require.NoError(t, err)

	got, err := store.Translations().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetAll_NewestFirstAndLimited(t *testing.T) {
	store := inmem.NewDatastore()
	defer store.Close()

	for i := 0; i < 3; i++ {
		_, err := store.Translations().Create(context.Background(), dao.Translation{Source: "x"})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	all, err := store.Translations().GetAll(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 0; i < len(all)-1; i++ {
		assert.True(t, !all[i].CreatedAt.Before(all[i+1].CreatedAt))
	}

	limited, err := store.Translations().GetAll(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, all[0].ID, limited[0].ID)
}
