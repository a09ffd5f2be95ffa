// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/platform/sec"
)

// signed builds an HS256 token the way the remote API does; the key is irrelevant here.
func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unknown-to-the-front-end"))
	require.NoError(t, err)
	return token
}

/*
TestInspect_ReadsClaims verifies sub and exp extraction without the key.
*/
func TestInspect_ReadsClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signed(t, jwt.RegisteredClaims{Subject: "42", ExpiresAt: jwt.NewNumericDate(expiry)})

	claims, ok := sec.Inspect(raw)
	require.True(t, ok)

	assert.False(t, claims.Opaque)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, expiry.Equal(claims.ExpiresAt))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(expiry.Add(time.Second)))
}

/*
TestInspect_ExpiredTokenStillDecodes ensures expiry is reported, not rejected.
*/
func TestInspect_ExpiredTokenStillDecodes(t *testing.T) {
	raw := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})

	claims, ok := sec.Inspect(raw)
	require.True(t, ok)
	assert.True(t, claims.Expired(time.Now()))
}

/*
TestInspect_EdgeCases covers blank and opaque tokens.
*/
func TestInspect_EdgeCases(t *testing.T) {
	_, ok := sec.Inspect("   ")
	assert.False(t, ok)

	claims, ok := sec.Inspect("opaque-session-token")
	assert.True(t, ok)
	assert.True(t, claims.Opaque)
	assert.False(t, claims.Expired(time.Now()))
}
