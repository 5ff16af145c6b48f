//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condogov/internal/profile/models"
	"condogov/pkg/testutil/containers"
)

func Test_PostgresStore_CRUD(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	s := NewPostgres(pg.DB)
	require.NoError(t, s.EnsureSchema(context.Background()))

	ctx := context.Background()
	record := models.Record{
		Wallet: "0xAbCd000000000000000000000000000000000001",
		Name:   "Alice Santos",
		Phone:  "+55 11 91234-5678",
		Email:  "alice@example.com",
	}

	require.NoError(t, s.Create(ctx, record))
	require.ErrorIs(t, s.Create(ctx, record), ErrDuplicate)

	found, err := s.Find(ctx, "0xABCD000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Santos", found.Name)
	assert.Equal(t, "alice@example.com", found.Email)

	found.Email = "alice.santos@example.com"
	require.NoError(t, s.Update(ctx, found))
	found, err = s.Find(ctx, record.Wallet)
	require.NoError(t, err)
	assert.Equal(t, "alice.santos@example.com", found.Email)

	require.NoError(t, s.Delete(ctx, record.Wallet))
	_, err = s.Find(ctx, record.Wallet)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Update(ctx, record), ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, record.Wallet), ErrNotFound)
}
