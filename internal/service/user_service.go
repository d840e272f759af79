package service

import (
	"context"
	"fmt"

	"vibechat/internal/cache"
	"vibechat/internal/model"
	"vibechat/internal/repository"
)

// UserService serves the lobby: everyone else who is around, with live
// presence.
type UserService struct {
	users    repository.UserRepo
	presence cache.PresenceCache
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepo, presence cache.PresenceCache) *UserService {
	return &UserService{
		users:    users,
		presence: presence,
	}
}

// Lobby lists all users except the requester, flagged online when their
// presence key is still alive.
func (s *UserService) Lobby(ctx context.Context, selfID string) ([]*model.LobbyUser, error) {
	users, err := s.users.List(ctx, selfID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	online, err := s.presence.OnlineAmong(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check presence: %w", err)
	}

	lobby := make([]*model.LobbyUser, len(users))
	for i, u := range users {
		lobby[i] = &model.LobbyUser{User: *u, Online: online[u.ID]}
	}
	return lobby, nil
}

// GetUser returns one user's public profile, or nil if unknown.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
