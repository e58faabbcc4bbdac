package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/bulletin"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAnnouncementRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAnnouncementRepository(db)
	ctx := context.Background()

	announcement, err := bulletin.NewAnnouncement(uuid.New(), "Water outage", "Maintenance on Saturday 9-12")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, announcement))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, announcement.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Water outage", found.Title)
	})

	t.Run("edits", func(t *testing.T) {
		require.NoError(t, announcement.Edit("Water outage moved", "Now on Sunday 9-12"))
		require.NoError(t, repo.Update(ctx, announcement))

		found, err := repo.FindByID(ctx, announcement.ID)
		require.NoError(t, err)
		assert.Equal(t, "Water outage moved", found.Title)
	})

	t.Run("lists with search", func(t *testing.T) {
		second, err := bulletin.NewAnnouncement(uuid.New(), "Parking rules", "New parking assignments")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, second))

		all, total, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, all, 2)

		matched, _, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 20, Search: "Parking"})
		require.NoError(t, err)
		require.Len(t, matched, 1)
		assert.Equal(t, "Parking rules", matched[0].Title)
	})

	t.Run("deletes", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, announcement.ID))

		err := repo.Delete(ctx, announcement.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
