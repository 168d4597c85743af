package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community_backend/internal/feature/events/domain/entity"
	"community_backend/internal/feature/events/usecase"
)

func TestRegistrationGorm_Create(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewRegistrationGorm(db)
	ctx := context.Background()

	event := seedEvent(t, db, "reg-target")

	t.Run("success", func(t *testing.T) {
		reg := &entity.Registration{
			EventID:        event.ID,
			UserSupabaseID: "sb-1",
			FirstName:      "Alice",
			LastName:       "Smith",
			UserEmail:      "alice@example.com",
			UserName:       "Alice Smith",
		}
		require.NoError(t, repo.Create(ctx, reg))
		assert.NotZero(t, reg.ID)
	})

	t.Run("duplicate (event, user) maps to sentinel", func(t *testing.T) {
		dup := &entity.Registration{
			EventID:        event.ID,
			UserSupabaseID: "sb-1",
			UserEmail:      "alice@example.com",
		}
		assert.ErrorIs(t, repo.Create(ctx, dup), usecase.ErrAlreadyRegistered)
	})

	t.Run("same user may register for another event", func(t *testing.T) {
		other := seedEvent(t, db, "other-event")
		reg := &entity.Registration{
			EventID:        other.ID,
			UserSupabaseID: "sb-1",
			UserEmail:      "alice@example.com",
		}
		assert.NoError(t, repo.Create(ctx, reg))
	})
}

func TestRegistrationGorm_Delete(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewRegistrationGorm(db)
	ctx := context.Background()

	event := seedEvent(t, db, "reg-delete")
	reg := &entity.Registration{EventID: event.ID, UserSupabaseID: "sb-1", UserEmail: "a@example.com"}
	require.NoError(t, repo.Create(ctx, reg))

	require.NoError(t, repo.Delete(ctx, reg.ID))

	regs, err := repo.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestRegistrationGorm_EventIDsByUser(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewRegistrationGorm(db)
	ctx := context.Background()

	first := seedEvent(t, db, "first")
	second := seedEvent(t, db, "second")
	seedEvent(t, db, "third")

	for _, eventID := range []uint{first.ID, second.ID} {
		require.NoError(t, repo.Create(ctx, &entity.Registration{
			EventID:        eventID,
			UserSupabaseID: "sb-1",
			UserEmail:      "a@example.com",
		}))
	}
	// Another user's registration must not leak into the set
	require.NoError(t, repo.Create(ctx, &entity.Registration{
		EventID:        first.ID,
		UserSupabaseID: "sb-2",
		UserEmail:      "b@example.com",
	}))

	set, err := repo.EventIDsByUser(ctx, "sb-1")
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.True(t, set[first.ID])
	assert.True(t, set[second.ID])

	empty, err := repo.EventIDsByUser(ctx, "sb-unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
