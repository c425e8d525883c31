package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// SeedUser inserts a user with a unique email and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) *domain.User {
	t.Helper()

	ctx := context.Background()
	u := &domain.User{
		ID:      uuid.New(),
		Name:    "Test Learner",
		IsGuest: false,
	}
	u.Email = fmt.Sprintf("learner-%s@example.com", u.ID)

	now := time.Now().UTC()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, name, is_guest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		u.ID, u.Email, u.Name, u.IsGuest, now)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	u.CreatedAt = now
	u.UpdatedAt = now
	return u
}
