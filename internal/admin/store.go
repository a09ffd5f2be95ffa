// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Gateway defines the user administration endpoints.
type Gateway interface {
	List(ctx context.Context, token string, query url.Values) (apiclient.Page[User], error)
	SetActive(ctx context.Context, token string, id int, active bool) (User, error)
}

// RemoteGateway implements [Gateway] over the remote REST API.
type RemoteGateway struct {
	client *apiclient.Client
}

// NewRemoteGateway creates a [RemoteGateway].
func NewRemoteGateway(client *apiclient.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// List calls GET /users.
func (gateway *RemoteGateway) List(ctx context.Context, token string, query url.Values) (apiclient.Page[User], error) {
	return apiclient.GetPage[User](ctx, gateway.client, token, "/users", query)
}

// SetActive calls PATCH /users/{id}/status.
func (gateway *RemoteGateway) SetActive(ctx context.Context, token string, id int, active bool) (User, error) {
	var user User
	err := gateway.client.Patch(ctx, token, fmt.Sprintf("/users/%d/status", id), StatusUpdate{IsActive: active}, &user)
	return user, err
}
