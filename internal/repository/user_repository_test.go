package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLookups(t *testing.T) {
	resetTables(t)
	repo := NewUserRepo(testDB)
	ctx := context.Background()

	id := seedUser(t, "jdoe", 730123456)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", u.Onyen)
	assert.Equal(t, uint64(730123456), u.PID)
	assert.Equal(t, "MEMBER", u.Role)

	u, err = repo.GetByOnyen(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = repo.GetByID(ctx, id+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByOnyen(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
