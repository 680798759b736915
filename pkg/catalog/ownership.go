package catalog

import "github.com/google/uuid"

// Owned is a resolved (resource, owner) pair used for authorization.
// OwnerUserID comes from walking the ownership chain: songs and albums
// resolve through their artist's owner, playlists and artist profiles
// carry their owner directly. A nil owner means the resource is
// unclaimed and only admins may manage it.
type Owned struct {
	Resource    string
	ID          uuid.UUID
	OwnerUserID *uuid.UUID
}

// Authorize decides whether the actor controls a resource with the given
// owner. The rule is the single source of truth for ownership checks:
// admins pass, otherwise the actor must be the resolved owner.
// It never mutates anything and returns a *ForbiddenError on violation.
func Authorize(actor Actor, target Owned) error {
	if actor.IsAdmin() {
		return nil
	}
	if target.OwnerUserID != nil && !actor.IsAnonymous() && actor.UserID == *target.OwnerUserID {
		return nil
	}
	return &ForbiddenError{Resource: target.Resource, ID: target.ID}
}

// AuthorizeAll applies Authorize to every target. The batch is
// all-or-nothing: the first target that fails aborts the whole check and
// its id is carried in the returned ForbiddenError. Callers must not
// execute any part of the batch when an error is returned.
func AuthorizeAll(actor Actor, targets []Owned) error {
	if actor.IsAdmin() {
		return nil
	}
	for _, target := range targets {
		if err := Authorize(actor, target); err != nil {
			return err
		}
	}
	return nil
}
