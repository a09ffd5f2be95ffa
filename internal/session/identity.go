// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/ctxkey"
)

// Identity is the current user as reported by GET /auth/me.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// Resolver fetches the identity behind a session.
type Resolver interface {
	Me(ctx context.Context, s Session) (*Identity, error)
}

// RemoteResolver asks the remote API who the token belongs to.
type RemoteResolver struct {
	client *apiclient.Client
}

// NewRemoteResolver creates a [RemoteResolver].
func NewRemoteResolver(client *apiclient.Client) *RemoteResolver {
	return &RemoteResolver{client: client}
}

// Me calls GET /auth/me.
//
// The call is bound to ctx: when the caller goes away (request cancelled,
// command interrupted) the request is abandoned and ctx's error is returned.
func (resolver *RemoteResolver) Me(ctx context.Context, s Session) (*Identity, error) {
	var identity Identity
	if err := resolver.client.Get(ctx, s.Token, "/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// WithIdentity attaches identity to ctx.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// IdentityFrom returns the identity attached by the admin guard, or nil.
func IdentityFrom(ctx context.Context) *Identity {
	identity, _ := ctx.Value(ctxkey.KeyIdentity).(*Identity)
	return identity
}
