package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/repository"
	"github.com/alimikegami/bulknest-server/internal/repository/mocks"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpsertOnLogin(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	svc := CreateUserService(repository.CreateNewMemoryUserRepository(), publisher)

	user, created, err := svc.UpsertOnLogin(ctx, dto.UserRequest{Email: "u@example.com", Name: "U"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, user.CreatedAt, user.LastLoggedIn)

	again, created, err := svc.UpsertOnLogin(ctx, dto.UserRequest{Email: "u@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, user.CreatedAt, again.CreatedAt)
	assert.Equal(t, "U", again.Name)
	assert.False(t, again.LastLoggedIn.Before(user.LastLoggedIn))

	assert.Equal(t, []string{dto.EventUserCreated}, publisher.types())

	_, _, err = svc.UpsertOnLogin(ctx, dto.UserRequest{})
	assert.ErrorIs(t, err, errs.ErrClient)
}

func TestUserService_GetRole(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	svc := CreateUserService(userRepo, nil)

	userRepo.On("GetUserByEmail", ctx, "seller@example.com").Return(domain.User{Email: "seller@example.com", Role: domain.RoleSeller}, nil)
	userRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(domain.User{}, errs.ErrAccountNotFound)
	userRepo.On("GetUserByEmail", ctx, "broken@example.com").Return(domain.User{}, errors.New("socket closed"))

	role, err := svc.GetRole(ctx, "seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, "seller", role.Role)

	_, err = svc.GetRole(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	_, err = svc.GetRole(ctx, "broken@example.com")
	assert.Error(t, err)
	assert.Equal(t, errs.ErrStatusInternalServer, errs.GetErrorStatusCode(err))

	userRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "UpsertOnLogin", mock.Anything, mock.Anything, mock.Anything)
}
