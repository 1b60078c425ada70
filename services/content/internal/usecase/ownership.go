package usecase

import (
	"context"
	"errors"
	"strings"

	"videotube/pkg/apperr"
	"videotube/services/content/internal/entity"
	"videotube/services/content/internal/repo/persistent"

	"github.com/google/uuid"
)

// OwnershipGuard answers whether an actor owns an entity. Every guarded
// mutation calls Authorize and returns its error before touching the store.
type OwnershipGuard interface {
	IsOwner(ctx context.Context, kind entity.Kind, id, actorID string) (bool, error)
	Authorize(ctx context.Context, kind entity.Kind, id, actorID string) error
}

type ownershipGuard struct {
	owners persistent.OwnerRepository
}

func NewOwnershipGuard(owners persistent.OwnerRepository) OwnershipGuard {
	return &ownershipGuard{owners: owners}
}

// IsOwner is false for a missing entity or an anonymous actor.
func (g *ownershipGuard) IsOwner(ctx context.Context, kind entity.Kind, id, actorID string) (bool, error) {
	if actorID == "" || !canonicalID(&id) {
		return false, nil
	}
	owner, err := g.owners.OwnerOf(ctx, kind, id)
	if errors.Is(err, persistent.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Internal(err, "Failed to verify ownership")
	}
	return owner == actorID, nil
}

func (g *ownershipGuard) Authorize(ctx context.Context, kind entity.Kind, id, actorID string) error {
	if !canonicalID(&id) {
		return apperr.Validation("Invalid %s id", kind)
	}
	owner, err := g.owners.OwnerOf(ctx, kind, id)
	if errors.Is(err, persistent.ErrNotFound) {
		return apperr.NotFound("%s not found", kind.Title())
	}
	if err != nil {
		return apperr.Internal(err, "Failed to verify ownership")
	}
	if actorID == "" || owner != actorID {
		return apperr.Unauthorized("You are not the owner of this %s", kind)
	}
	return nil
}

// canonicalID rewrites *id to the lowercase hyphenated form, so every
// spelling uuid.Parse accepts reaches the store and map lookups as one key.
func canonicalID(id *string) bool {
	parsed, err := uuid.Parse(*id)
	if err != nil {
		return false
	}
	*id = parsed.String()
	return true
}

func requireID(kind entity.Kind, id *string) error {
	if !canonicalID(id) {
		return apperr.Validation("Invalid %s id", kind)
	}
	return nil
}

func requireText(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Validation("%s is required", field)
	}
	return value, nil
}

// storeErr hides repository errors behind the client-facing kinds.
func storeErr(err error, kind entity.Kind, action string) error {
	if errors.Is(err, persistent.ErrNotFound) {
		return apperr.NotFound("%s not found", kind.Title())
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal(err, "Failed to "+action)
}
