// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the account screens: login, signup, password recovery
and logout.

Credentials are never checked here. They are validated for shape, forwarded to
the remote API, and the bearer token it returns is handed to the session store.

Architecture:

  - Service: the use cases, shared by the web pages and the terminal client.
  - Gateway: the remote endpoints behind an interface.
  - Handler: the HTML forms and redirects.
*/
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/validate"
)

// # Definitions & Constructors

// Service implements the account use cases.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewService constructs a [Service].
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// # Login & Signup

// Login validates the credentials and returns the bearer token.
//
// # Returns
//   - The token to store on success.
//   - A VALIDATION_ERROR when a field is empty (no request is sent).
//   - UNAUTHORIZED with the server text when the backend rejects the pair.
func (service *Service) Login(ctx context.Context, credentials Credentials) (string, error) {
	credentials.Email = strings.TrimSpace(credentials.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, credentials.Email).
		Required(FieldPassword, credentials.Password)

	if err := validator.Err(); err != nil {
		return "", err
	}

	token, err := service.gateway.Login(ctx, credentials)
	if err != nil {
		return "", err
	}

	if token == "" {
		return "", apperr.Unauthorized(MessageInvalidCredentials)
	}

	service.logger.InfoContext(ctx, "user_logged_in")
	return token, nil
}

// Signup creates the account then logs in with the same credentials.
//
// # Business Rules
//   - Username, email and password are required; the email must be well formed.
//   - An existing email is refused by the backend ("Email déjà utilisé").
//   - On success the returned token is stored exactly like a login.
func (service *Service) Signup(ctx context.Context, input SignupInput) (string, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		return "", err
	}

	if err := service.gateway.Signup(ctx, input); err != nil {
		return "", err
	}

	service.logger.InfoContext(ctx, "user_signed_up", slog.String("username", input.Username))

	return service.Login(ctx, Credentials{Email: input.Email, Password: input.Password})
}

// # Password Recovery

// ForgotPassword requests a reset link.
//
// The outcome is deliberately invisible: whatever the backend answers, the
// caller shows the same neutral confirmation. Only a failure to reach the
// backend (or an abandoned request) is reported.
func (service *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	if err := (&validate.Validator{}).Required(FieldEmail, email).Err(); err != nil {
		return err
	}

	err := service.gateway.ForgotPassword(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), apperr.HasCode(err, apperr.CodeNetwork):
		return err
	default:
		service.logger.InfoContext(ctx, "forgot_password_rejected", slog.String("error", err.Error()))
		return nil
	}
}

// ResetPassword sets a new password from a reset link.
//
// # Business Rules
//   - A missing token means the link is invalid; no request is sent.
//   - Password and confirmation must match; no request is sent otherwise.
func (service *Service) ResetPassword(ctx context.Context, input ResetInput) error {
	if strings.TrimSpace(input.Token) == "" {
		return validate.RequiredError(FieldToken, MessageInvalidLink)
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password)
	if validator.HasErrors() {
		return validator.Err()
	}

	if input.Password != input.Confirm {
		return validate.RequiredError(FieldConfirm, MessagePasswordMismatch)
	}

	if err := service.gateway.ResetPassword(ctx, input.Token, input.Password); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "password_reset")
	return nil
}
