package catalog_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

func TestAuthorize(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name    string
		actor   catalog.Actor
		owner   *uuid.UUID
		allowed bool
	}{
		{
			name:    "admin passes regardless of owner",
			actor:   catalog.Actor{UserID: otherID, Role: catalog.RoleAdmin},
			owner:   &ownerID,
			allowed: true,
		},
		{
			name:    "admin passes on unclaimed resource",
			actor:   catalog.Actor{UserID: otherID, Role: catalog.RoleAdmin},
			owner:   nil,
			allowed: true,
		},
		{
			name:    "owner passes",
			actor:   catalog.Actor{UserID: ownerID, Role: catalog.RoleArtist},
			owner:   &ownerID,
			allowed: true,
		},
		{
			name:    "non-owner fails",
			actor:   catalog.Actor{UserID: otherID, Role: catalog.RoleArtist},
			owner:   &ownerID,
			allowed: false,
		},
		{
			name:    "non-admin fails on unclaimed resource",
			actor:   catalog.Actor{UserID: ownerID, Role: catalog.RoleArtist},
			owner:   nil,
			allowed: false,
		},
		{
			name:    "anonymous fails even when ids would match",
			actor:   catalog.Actor{},
			owner:   func() *uuid.UUID { nilID := uuid.Nil; return &nilID }(),
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.Authorize(tt.actor, catalog.Owned{
				Resource:    "song",
				ID:          uuid.New(),
				OwnerUserID: tt.owner,
			})
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, catalog.IsForbidden(err))
			}
		})
	}
}

func TestAuthorizeAllFirstOffender(t *testing.T) {
	ownerID := uuid.New()
	foreignID := uuid.New()
	offendingID := uuid.New()

	targets := []catalog.Owned{
		{Resource: "song", ID: uuid.New(), OwnerUserID: &ownerID},
		{Resource: "song", ID: offendingID, OwnerUserID: &foreignID},
		{Resource: "song", ID: uuid.New(), OwnerUserID: &foreignID},
	}

	err := catalog.AuthorizeAll(catalog.Actor{UserID: ownerID, Role: catalog.RoleArtist}, targets)
	require.Error(t, err)

	var fe *catalog.ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, offendingID, fe.ID, "error should carry the first offending id")
}

func TestAuthorizeAllAdminShortCircuits(t *testing.T) {
	foreignID := uuid.New()
	targets := []catalog.Owned{
		{Resource: "album", ID: uuid.New(), OwnerUserID: &foreignID},
		{Resource: "album", ID: uuid.New()},
	}

	err := catalog.AuthorizeAll(catalog.Actor{UserID: uuid.New(), Role: catalog.RoleAdmin}, targets)
	assert.NoError(t, err)
}
