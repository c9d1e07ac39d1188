package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhaalawais/fos-hrdd-software/internal/auth"
	"github.com/minhaalawais/fos-hrdd-software/internal/client"
	"github.com/minhaalawais/fos-hrdd-software/internal/session"
)

func newAuthService(portal Portal, sessions session.Store) *AuthService {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewAuthService(portal, sessions, issuer, time.Hour)
}

func TestLoginStoresSessionAndIssuesToken(t *testing.T) {
	portal := &fakePortal{loginResult: &client.LoginResult{AccessToken: "upstream-tok"}}
	sessions := session.NewMemory()
	svc := newAuthService(portal, sessions)

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "hr@factory.example",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "hr@factory.example", result.Email)

	claims, err := auth.NewParser("test-secret").Parse(result.Token)
	require.NoError(t, err)

	stored, err := sessions.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "upstream-tok", stored.UpstreamToken)
}

// Blank credentials are rejected locally; the upstream must not be contacted.
func TestLoginRejectsEmptyCredentialsWithoutUpstreamCall(t *testing.T) {
	portal := &fakePortal{}
	svc := newAuthService(portal, session.NewMemory())

	_, err := svc.Login(context.Background(), LoginInput{Username: "  ", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login(context.Background(), LoginInput{Username: "user", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, portal.loginCalls)
}

func TestLoginPropagatesUpstreamRejection(t *testing.T) {
	portal := &fakePortal{loginErr: client.ErrUnauthorized}
	svc := newAuthService(portal, session.NewMemory())

	_, err := svc.Login(context.Background(), LoginInput{Username: "user", Password: "bad"})

	assert.True(t, client.IsUnauthorized(err))
}

func TestLogoutDeletesSessionEvenIfUpstreamFails(t *testing.T) {
	ctx := context.Background()
	portal := &fakePortal{
		loginResult: &client.LoginResult{AccessToken: "tok"},
		logoutErr:   assert.AnError,
	}
	sessions := session.NewMemory()
	svc := newAuthService(portal, sessions)

	out, err := svc.Login(ctx, LoginInput{Username: "user", Password: "pass"})
	require.NoError(t, err)

	claims, err := auth.NewParser("test-secret").Parse(out.Token)
	require.NoError(t, err)
	sess, err := sessions.Get(ctx, claims.SessionID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess))
	assert.Equal(t, 1, portal.logoutCalls)

	_, err = sessions.Get(ctx, claims.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
