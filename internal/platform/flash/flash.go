// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package flash carries one-shot notifications across a redirect.

An action handler sets a message and redirects; the next page render pops it
and shows it above the content. The message lives in a short-lived cookie and
is removed as soon as it is read.
*/
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/taibuivan/etagere/internal/platform/constants"
)

// Kind selects how a message is styled.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// maxAge keeps an unread message from surfacing on an unrelated page much later.
const maxAge = 60

// Message is a single notification.
type Message struct {
	Kind Kind   `json:"k"`
	Text string `json:"t"`
}

// Success queues a success message.
func Success(writer http.ResponseWriter, text string) { Set(writer, KindSuccess, text) }

// Error queues an error message.
func Error(writer http.ResponseWriter, text string) { Set(writer, KindError, text) }

// Info queues a neutral message.
func Info(writer http.ResponseWriter, text string) { Set(writer, KindInfo, text) }

// Set queues a message for the next rendered page.
func Set(writer http.ResponseWriter, kind Kind, text string) {
	encoded, err := json.Marshal(Message{Kind: kind, Text: text})
	if err != nil {
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(encoded),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and removes it.
func Pop(writer http.ResponseWriter, request *http.Request) *Message {
	cookie, err := request.Cookie(constants.FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var message Message
	if err := json.Unmarshal(decoded, &message); err != nil || message.Text == "" {
		return nil
	}

	return &message
}
