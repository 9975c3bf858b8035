package repository

import (
	"context"
	"fmt"

	"catalog-service/internal/store"
)

const usersCollection = "users"

// UsersRepository resolves the role record kept alongside the identity
// provider's uid. A missing record is not an error; the caller falls back to
// the admin-email allowlist.
type UsersRepository struct {
	store store.DocumentStore
}

func NewUsersRepository(docs store.DocumentStore) *UsersRepository {
	return &UsersRepository{store: docs}
}

// GetRole returns the stored role for a uid, or "" when no record exists.
func (r *UsersRepository) GetRole(ctx context.Context, uid string) (string, error) {
	doc, err := r.store.Get(ctx, usersCollection, uid)
	if err != nil {
		return "", fmt.Errorf("get user role: %w", err)
	}
	if doc == nil {
		return "", nil
	}
	role, _ := doc.Data["role"].(string)
	return role, nil
}
