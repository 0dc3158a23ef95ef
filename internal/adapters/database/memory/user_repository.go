package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

type UserRepository struct {
	provider *Provider
}

func newUserRepository(provider *Provider) portsrepo.UserRepositoryFacade {
	return &UserRepository{provider: provider}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok || user.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) && user.DeletedAt == nil {
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	s, err := r.provider.getStore()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []domain.User{}
	for _, user := range s.users {
		if user.DeletedAt == nil {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	if offset > len(users) {
		offset = len(users)
	}
	end := offset + limit
	if limit <= 0 || end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) && existing.DeletedAt == nil {
			return apperrors.ErrDuplicate
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	s, err := r.provider.getStore()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.UserID]; !ok {
		return apperrors.NewNotFoundError("user " + user.UserID + " not found")
	}
	for _, existing := range s.users {
		if existing.UserID != user.UserID && strings.EqualFold(existing.Email, user.Email) && existing.DeletedAt == nil {
			return apperrors.ErrDuplicate
		}
	}
	s.users[user.UserID] = user
	return nil
}
