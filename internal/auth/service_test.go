// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/auth"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/webtest"
)

// fakeGateway records calls and returns canned answers.
type fakeGateway struct {
	token     string
	loginErr  error
	signupErr error
	forgotErr error
	resetErr  error

	logins  []auth.Credentials
	signups []auth.SignupInput
	forgots []string
	resets  [][2]string
}

func (gateway *fakeGateway) Login(_ context.Context, credentials auth.Credentials) (string, error) {
	gateway.logins = append(gateway.logins, credentials)
	return gateway.token, gateway.loginErr
}

func (gateway *fakeGateway) Signup(_ context.Context, input auth.SignupInput) error {
	gateway.signups = append(gateway.signups, input)
	return gateway.signupErr
}

func (gateway *fakeGateway) ForgotPassword(_ context.Context, email string) error {
	gateway.forgots = append(gateway.forgots, email)
	return gateway.forgotErr
}

func (gateway *fakeGateway) ResetPassword(_ context.Context, token, password string) error {
	gateway.resets = append(gateway.resets, [2]string{token, password})
	return gateway.resetErr
}

/*
TestService_Login covers validation, rejection and success.
*/
func TestService_Login(t *testing.T) {
	fake := faker.New()
	email := fake.Internet().Email()

	tests := []struct {
		name        string
		credentials auth.Credentials
		gateway     *fakeGateway
		wantToken   string
		wantCode    string
		wantCalls   int
	}{
		{
			name:        "missing_password_sends_nothing",
			credentials: auth.Credentials{Email: email},
			gateway:     &fakeGateway{},
			wantCode:    apperr.CodeValidation,
		},
		{
			name:        "rejected",
			credentials: auth.Credentials{Email: email, Password: "wrong"},
			gateway:     &fakeGateway{loginErr: apperr.Unauthorized(auth.MessageInvalidCredentials)},
			wantCode:    apperr.CodeUnauthorized,
			wantCalls:   1,
		},
		{
			name:        "success_trims_email",
			credentials: auth.Credentials{Email: "  " + email + " ", Password: "secret"},
			gateway:     &fakeGateway{token: "tok"},
			wantToken:   "tok",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := auth.NewService(tt.gateway, webtest.Logger())

			token, err := service.Login(context.Background(), tt.credentials)

			assert.Len(t, tt.gateway.logins, tt.wantCalls)
			if tt.wantCode != "" {
				assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, email, tt.gateway.logins[0].Email)
		})
	}
}

/*
TestService_Signup logs in with the same credentials after the account is created.
*/
func TestService_Signup(t *testing.T) {
	fake := faker.New()
	input := auth.SignupInput{
		Username: fake.Person().FirstName(),
		Email:    fake.Internet().Email(),
		Password: fake.Internet().Password(),
	}

	gateway := &fakeGateway{token: "fresh"}
	token, err := auth.NewService(gateway, webtest.Logger()).Signup(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	require.Len(t, gateway.signups, 1)
	require.Len(t, gateway.logins, 1)
	assert.Equal(t, auth.Credentials{Email: input.Email, Password: input.Password}, gateway.logins[0])

	// Existing email: the server message surfaces and no login is attempted.
	gateway = &fakeGateway{signupErr: apperr.Upstream(400, "Email déjà utilisé")}
	_, err = auth.NewService(gateway, webtest.Logger()).Signup(context.Background(), input)
	assert.Equal(t, "Email déjà utilisé", apperr.UserMessage(err, ""))
	assert.Empty(t, gateway.logins)

	// Malformed email never reaches the backend.
	gateway = &fakeGateway{}
	input.Email = "not-an-email"
	_, err = auth.NewService(gateway, webtest.Logger()).Signup(context.Background(), input)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Empty(t, gateway.signups)
}

/*
TestService_ForgotPassword hides every outcome except transport failures.
*/
func TestService_ForgotPassword(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"accepted", nil, false},
		{"unknown_account", apperr.NotFound("Utilisateur introuvable"), false},
		{"server_error", apperr.Upstream(500, ""), false},
		{"network", apperr.Network(errors.New("refused")), true},
		{"abandoned", context.Canceled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{forgotErr: tt.err}
			err := auth.NewService(gateway, webtest.Logger()).ForgotPassword(context.Background(), "a@b.fr")

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, []string{"a@b.fr"}, gateway.forgots)
		})
	}
}

/*
TestService_ResetPassword guards the link token and the confirmation locally.
*/
func TestService_ResetPassword(t *testing.T) {
	tests := []struct {
		name        string
		input       auth.ResetInput
		wantMessage string
		wantCalls   int
	}{
		{"missing_token", auth.ResetInput{Password: "a", Confirm: "a"}, auth.MessageInvalidLink, 0},
		{"mismatch", auth.ResetInput{Token: "t", Password: "a", Confirm: "b"}, auth.MessagePasswordMismatch, 0},
		{"ok", auth.ResetInput{Token: "t", Password: "a", Confirm: "a"}, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{}
			err := auth.NewService(gateway, webtest.Logger()).ResetPassword(context.Background(), tt.input)

			assert.Len(t, gateway.resets, tt.wantCalls)
			if tt.wantMessage == "" {
				require.NoError(t, err)
				assert.Equal(t, [2]string{"t", "a"}, gateway.resets[0])
				return
			}
			assert.Equal(t, tt.wantMessage, apperr.UserMessage(err, ""))
		})
	}
}
