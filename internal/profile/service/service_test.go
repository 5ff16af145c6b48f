package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condogov/internal/profile/models"
	"condogov/internal/profile/store"
	dErrors "condogov/pkg/domain-errors"
)

var ctx = context.Background()

func newService() *Service {
	return New(store.NewMemoryStore())
}

func Test_Create(t *testing.T) {
	s := newService()

	created, err := s.Create(ctx, models.Record{
		Wallet: "0xAbCd000000000000000000000000000000000001",
		Name:   "Alice Santos",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xabcd000000000000000000000000000000000001", created.Wallet.String())

	_, err = s.Create(ctx, models.Record{
		Wallet: "0xABCD000000000000000000000000000000000001",
		Name:   "Alice Again",
	})
	require.True(t, dErrors.HasCode(err, dErrors.CodeDuplicate))
}

func Test_Create_Validation(t *testing.T) {
	s := newService()

	_, err := s.Create(ctx, models.Record{Name: "No Wallet"})
	require.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAddress))

	_, err = s.Create(ctx, models.Record{Wallet: "0xAbCd000000000000000000000000000000000001", Name: "  "})
	require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func Test_Update_PatchSemantics(t *testing.T) {
	s := newService()

	_, err := s.Create(ctx, models.Record{
		Wallet: "0xAbCd000000000000000000000000000000000001",
		Name:   "Alice Santos",
		Phone:  "+55 11 91234-5678",
	})
	require.NoError(t, err)

	// Empty fields keep their stored value.
	updated, err := s.Update(ctx, "0xAbCd000000000000000000000000000000000001", models.Record{
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Santos", updated.Name)
	assert.Equal(t, "+55 11 91234-5678", updated.Phone)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func Test_Update_MissingProfile(t *testing.T) {
	s := newService()

	_, err := s.Update(ctx, "0xAbCd000000000000000000000000000000000001", models.Record{Name: "Nobody"})
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func Test_Delete(t *testing.T) {
	s := newService()

	_, err := s.Create(ctx, models.Record{
		Wallet: "0xAbCd000000000000000000000000000000000001",
		Name:   "Alice Santos",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "0xAbCd000000000000000000000000000000000001"))
	err = s.Delete(ctx, "0xAbCd000000000000000000000000000000000001")
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
