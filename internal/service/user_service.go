package service

import (
	"context"

	"github.com/dkoss/relay/internal/domain"
	"github.com/dkoss/relay/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns the directory of every user except the caller.
func (s *UserService) ListUsers(ctx context.Context, identity domain.Identity) ([]domain.UserSummary, error) {
	users, err := s.userRepo.ListExcluding(ctx, identity.UserName)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	return users, nil
}
