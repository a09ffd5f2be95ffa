// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/flash"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
)

// # Definitions & Constructors

// TokenWriter is the single writer of the browser session.
type TokenWriter interface {
	Save(writer http.ResponseWriter, token string)
	Clear(writer http.ResponseWriter)
}

// Handler serves the account pages.
type Handler struct {
	service  *Service
	pages    *respond.Pages
	sessions TokenWriter
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, pages *respond.Pages, sessions TokenWriter) *Handler {
	return &Handler{service: service, pages: pages, sessions: sessions}
}

// RegisterRoutes mounts the guest pages.
//
// # Endpoints
//   - GET/POST /login           : Login form.
//   - GET/POST /signup          : Account creation, then automatic login.
//   - GET/POST /forgot-password : Reset link request.
//   - GET/POST /reset-password  : New password from a reset link (?token=).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/login", handler.showLogin)
	router.Post("/login", handler.login)
	router.Get("/signup", handler.showSignup)
	router.Post("/signup", handler.signup)
	router.Get("/forgot-password", handler.showForgot)
	router.Post("/forgot-password", handler.forgot)
	router.Get("/reset-password", handler.showReset)
	router.Post("/reset-password", handler.reset)
}

// Logout clears the session token. POST /logout
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Clear(writer)
	handler.pages.Success(writer, request, MessageLoggedOut, constants.LoginPath)
}

// # Form State

// form is what the account templates receive in Page.Data.
type form struct {
	Username    string
	Email       string
	Token       string
	Sent        bool
	InvalidLink bool
}

// # Login

func (handler *Handler) showLogin(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, "login", view.Page{Title: "Connexion", Data: form{}})
}

/*
Login exchanges the submitted credentials for a session.

POST /login

Response:
  - 303: Dashboard, token cookie set
  - 422: Form re-rendered with the server message (e.g. "Identifiants invalides")
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	credentials := Credentials{
		Email:    request.PostFormValue(FieldEmail),
		Password: request.PostFormValue(FieldPassword),
	}

	token, err := handler.service.Login(request.Context(), credentials)
	if err != nil {
		handler.invalid(writer, request, "login", "Connexion", form{Email: credentials.Email}, err, MessageInvalidCredentials)
		return
	}

	handler.sessions.Save(writer, token)
	handler.pages.Redirect(writer, request, constants.HomePath)
}

// # Signup

func (handler *Handler) showSignup(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, "signup", view.Page{Title: "Inscription", Data: form{}})
}

/*
Signup creates an account and logs straight in.

POST /signup

Response:
  - 303: Dashboard, token cookie set
  - 422: Form re-rendered with the server message (e.g. "Email déjà utilisé")
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	input := SignupInput{
		Username: request.PostFormValue(FieldUsername),
		Email:    request.PostFormValue(FieldEmail),
		Password: request.PostFormValue(FieldPassword),
	}

	token, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		state := form{Username: input.Username, Email: input.Email}
		handler.invalid(writer, request, "signup", "Inscription", state, err, MessageSignupFailed)
		return
	}

	handler.sessions.Save(writer, token)
	flash.Success(writer, "Compte créé avec succès ! Bienvenue, "+input.Username+".")
	handler.pages.Redirect(writer, request, constants.HomePath)
}

// # Password Recovery

func (handler *Handler) showForgot(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, "forgot", view.Page{Title: "Mot de passe oublié", Data: form{}})
}

func (handler *Handler) forgot(writer http.ResponseWriter, request *http.Request) {
	email := request.PostFormValue(FieldEmail)

	if err := handler.service.ForgotPassword(request.Context(), email); err != nil {
		handler.invalid(writer, request, "forgot", "Mot de passe oublié", form{Email: email}, err, apperr.MessageInternal)
		return
	}

	handler.pages.Render(writer, request, "forgot", view.Page{
		Title: "Mot de passe oublié",
		Flash: &flash.Message{Kind: flash.KindSuccess, Text: MessageForgotSent},
		Data:  form{Sent: true},
	})
}

func (handler *Handler) showReset(writer http.ResponseWriter, request *http.Request) {
	token := request.URL.Query().Get(FieldToken)
	page := view.Page{Title: "Nouveau mot de passe", Data: form{Token: token, InvalidLink: token == ""}}

	if token == "" {
		page.Flash = &flash.Message{Kind: flash.KindError, Text: MessageInvalidLink}
	}

	handler.pages.Render(writer, request, "reset", page)
}

/*
Reset sets a new password from the reset link.

POST /reset-password

Response:
  - 303: Login page with a success notice
  - 422: Form re-rendered (invalid link, mismatch, or server message)
*/
func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request) {
	input := ResetInput{
		Token:    request.PostFormValue(FieldToken),
		Password: request.PostFormValue(FieldPassword),
		Confirm:  request.PostFormValue(FieldConfirm),
	}

	if err := handler.service.ResetPassword(request.Context(), input); err != nil {
		state := form{Token: input.Token, InvalidLink: input.Token == ""}
		handler.invalid(writer, request, "reset", "Nouveau mot de passe", state, err, MessageResetFailed)
		return
	}

	handler.pages.Success(writer, request, MessagePasswordUpdated, constants.LoginPath)
}

// invalid re-renders a guest form. A 401 here is a rejected credential, not an
// expired session, so the generic taxonomy is not applied.
func (handler *Handler) invalid(writer http.ResponseWriter, request *http.Request, name, title string, state form, err error, fallback string) {
	if errors.Is(err, context.Canceled) {
		return
	}
	respond.Log(request.Context(), err)
	handler.pages.Invalid(writer, request, name, view.Page{Title: title, Data: state}, apperr.UserMessage(err, fallback))
}
