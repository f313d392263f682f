package service

import (
	"context"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/repository"
	"github.com/alimikegami/bulknest-server/pkg/errs"
)

type UserServiceImpl struct {
	userRepo  repository.UserRepository
	publisher EventPublisher
}

func CreateUserService(userRepo repository.UserRepository, publisher EventPublisher) UserService {
	return &UserServiceImpl{userRepo: userRepo, publisher: publisher}
}

// UpsertOnLogin creates a customer account on first sight of an email and
// only refreshes lastLoggedIn afterwards.
func (s *UserServiceImpl) UpsertOnLogin(ctx context.Context, req dto.UserRequest) (user domain.User, created bool, err error) {
	if req.Email == "" {
		return user, false, errs.ErrClient
	}

	user, created, err = s.userRepo.UpsertOnLogin(ctx, domain.User{
		Email: req.Email,
		Name:  req.Name,
		Image: req.Image,
		Role:  domain.RoleCustomer,
	}, time.Now().UTC())
	if err != nil {
		return
	}

	if created {
		publish(ctx, s.publisher, dto.EventUserCreated, user.Email, dto.UserEvent{
			Email: user.Email,
			Role:  string(user.Role),
		})
	}

	return user, created, nil
}

func (s *UserServiceImpl) GetRole(ctx context.Context, email string) (data dto.RoleResponse, err error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	return dto.RoleResponse{Role: string(user.Role)}, nil
}
