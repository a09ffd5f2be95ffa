// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Gateway defines the account endpoints of the remote API.
//
// # Implementations
//
// The canonical implementation is [RemoteGateway]. Tests may swap in a fake.
type Gateway interface {
	// Login exchanges credentials for a bearer token.
	//
	// Returns [apperr.Unauthorized] when the credentials are rejected.
	Login(ctx context.Context, credentials Credentials) (string, error)

	// Signup creates an account. It does not log in.
	Signup(ctx context.Context, input SignupInput) error

	// ForgotPassword asks the backend to mail a reset link.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using the token from the reset link.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// RemoteGateway implements [Gateway] over the remote REST API.
type RemoteGateway struct {
	client *apiclient.Client
}

// NewRemoteGateway creates a [RemoteGateway].
func NewRemoteGateway(client *apiclient.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// Login calls POST /auth/login.
func (gateway *RemoteGateway) Login(ctx context.Context, credentials Credentials) (string, error) {
	var response tokenResponse
	if err := gateway.client.Post(ctx, "", "/auth/login", credentials, &response); err != nil {
		return "", err
	}
	return response.AccessToken, nil
}

// Signup calls POST /users/.
func (gateway *RemoteGateway) Signup(ctx context.Context, input SignupInput) error {
	return gateway.client.Post(ctx, "", "/users/", input, nil)
}

// ForgotPassword calls POST /auth/forgot-password.
func (gateway *RemoteGateway) ForgotPassword(ctx context.Context, email string) error {
	return gateway.client.Post(ctx, "", "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword calls POST /auth/reset-password.
func (gateway *RemoteGateway) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "new_password": newPassword}
	return gateway.client.Post(ctx, "", "/auth/reset-password", body, nil)
}
