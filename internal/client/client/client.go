package client

import (
	"context"

	"github.com/dmitrijs2005/plated/internal/client/models"
)

type Client interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) error
	GetUserProfile(ctx context.Context) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, upd models.ProfileUpdate) error
	// CheckUsername reports whether username is free to claim.
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// UnauthorizedHandler is invoked for every 401 response.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}
