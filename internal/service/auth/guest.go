package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// GuestLogin creates a throwaway guest account and issues tokens for it.
// The account has no password; it exists so the app can be tried without
// registering, and its data is scoped like any other user's.
func (s *Service) GuestLogin(ctx context.Context) (*AuthResult, error) {
	var createdUser *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		id := uuid.New()
		guest := &domain.User{
			ID:        id,
			Email:     fmt.Sprintf("guest-%s@guest.invalid", id),
			Name:      "Guest",
			IsGuest:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}

		user, err := s.users.Create(txCtx, guest)
		if err != nil {
			return fmt.Errorf("create guest user: %w", err)
		}

		createdUser = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.GuestLogin: %w", err)
	}

	result, err := s.issueTokens(ctx, createdUser)
	if err != nil {
		return nil, fmt.Errorf("auth.GuestLogin issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "guest session created",
		slog.String("user_id", createdUser.ID.String()))

	return result, nil
}
