package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/common"
	"taskboard/internal/domain/model"
	"taskboard/internal/domain/repository"
	"taskboard/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "admin")
	require.ErrorIs(t, err, common.ErrNotFound)

	user := &model.User{
		ID:             "5d0e6f1c-8c4b-4a53-9a55-5d1f0b1a2c3d",
		Username:       "admin",
		HashedPassword: "hash",
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.HashedPassword)

	dup := *user
	dup.ID = "another-id"
	assert.ErrorIs(t, repo.Create(ctx, &dup), common.ErrConflict)
}
