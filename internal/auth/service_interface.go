package auth

import (
	"context"

	"github.com/arun-kumar-js/heal-doc/internal/session"
)

// ServiceInterface defines the auth operations.
type ServiceInterface interface {
	Login(ctx context.Context, username, password string) (*session.Session, error)
	Logout(ctx context.Context) error
}
