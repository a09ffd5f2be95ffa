// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin lets administrators find accounts and switch them on or off.

The pages are only reachable when GET /auth/me reports is_admin. The remote
API enforces the same rule; the guard here only avoids rendering a view the
backend would refuse.
*/
package admin

import "github.com/taibuivan/etagere/internal/platform/apiclient"

// User is an account as listed by GET /users.
type User struct {
	ID        int            `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	IsAdmin   bool           `json:"is_admin"`
	IsActive  bool           `json:"is_active"`
	CreatedAt apiclient.Time `json:"created_at"`
}

// Role is the label of the role column.
func (user User) Role() string {
	if user.IsAdmin {
		return "Admin"
	}
	return "Lecteur"
}

// StatusLabel is the label of the status toggle.
func (user User) StatusLabel() string {
	if user.IsActive {
		return "Actif"
	}
	return "Désactivé"
}

// StatusUpdate is the body of PATCH /users/{id}/status.
type StatusUpdate struct {
	IsActive bool `json:"is_active"`
}
