package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"identity-service/internal/models"
	"identity-service/internal/repository"
)

func TestUserService_GetProfile(t *testing.T) {
	user := &models.User{ID: 5, Username: "alice", Email: "a@x.com", CreatedAt: time.Now()}
	svc := NewUserService(&stubUserRepo{byID: user}, zap.NewNop())

	got, err := svc.GetProfile(5)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc := NewUserService(&stubUserRepo{byIDErr: repository.ErrNotFound}, zap.NewNop())

	_, err := svc.GetProfile(5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		updateErr error
		wantErr   error
	}{
		{name: "empty email", email: "", wantErr: ErrInvalidInput},
		{name: "duplicate email", email: "taken@x.com", updateErr: repository.ErrDuplicate, wantErr: ErrEmailExists},
		{name: "user gone", email: "a@x.com", updateErr: repository.ErrNotFound, wantErr: ErrUserNotFound},
		{name: "success", email: "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&stubUserRepo{updateErr: tt.updateErr}, zap.NewNop())

			err := svc.UpdateProfile(1, tt.email, "Alice Doe", "captain", "admin")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_UpdateProfile_StoreFailure(t *testing.T) {
	svc := NewUserService(&stubUserRepo{updateErr: errors.New("connection lost")}, zap.NewNop())

	err := svc.UpdateProfile(1, "a@x.com", "", "", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailExists)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	list := []models.PublicUser{
		{ID: 2, Username: "bob"},
		{ID: 1, Username: "alice"},
	}
	svc := NewUserService(&stubUserRepo{list: list}, zap.NewNop())

	got, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestUserService_CountUsers(t *testing.T) {
	svc := NewUserService(&stubUserRepo{count: 2}, zap.NewNop())

	count, err := svc.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
