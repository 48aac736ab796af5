package service

import (
	"context"
	"errors"
	"fmt"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPermissionDenied = errors.New("permission denied: role is not allowed to perform this operation")
	ErrUserNotFound     = errors.New("user not found")
)

// roleGate is the single authorization check fronting every mutation: it
// resolves the acting identity and verifies its role against the allowed set.
// Every service embeds one instead of scattering per-operation role checks.
type roleGate struct {
	userRepo repository.UserRepository
}

// Require resolves the actor by id and fails with ErrPermissionDenied unless
// its role is in the allowed set. The resolved user is returned so callers
// don't have to fetch it twice.
func (g roleGate) Require(ctx context.Context, actorID primitive.ObjectID, allowed ...domain.Role) (*domain.User, error) {
	actor, err := g.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := CheckRole(actor.Role, allowed...); err != nil {
		return nil, err
	}
	return actor, nil
}

// CheckRole verifies membership of role in the allowed set.
func CheckRole(role domain.Role, allowed ...domain.Role) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return fmt.Errorf("%w (role %q)", ErrPermissionDenied, role)
}
