// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Payloads

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is the body of POST /users/.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetInput is what the reset form submits.
type ResetInput struct {
	Token    string
	Password string
	Confirm  string
}

// tokenResponse is the answer of POST /auth/login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// # Field Names

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldConfirm  = "confirm"
	FieldToken    = "token"
)

// # Messages

const (
	MessageInvalidCredentials = "Identifiants invalides"
	MessageForgotSent         = "Si un compte existe, un email a été envoyé"
	MessageInvalidLink        = "Lien invalide. Merci de refaire la demande."
	MessagePasswordMismatch   = "Les mots de passe ne correspondent pas."
	MessagePasswordUpdated    = "Ton mot de passe a été mis à jour"
	MessageResetFailed        = "Impossible de mettre à jour le mot de passe"
	MessageSignupFailed       = "Une erreur est survenue."
	MessageLoggedOut          = "Tu es déconnecté"
)
