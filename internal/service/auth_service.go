package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minhaalawais/fos-hrdd-software/internal/auth"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
	"github.com/minhaalawais/fos-hrdd-software/internal/session"
)

type AuthService struct {
	portal   Portal
	sessions session.Store
	issuer   *auth.Issuer
	ttl      time.Duration
}

func NewAuthService(portal Portal, sessions session.Store, issuer *auth.Issuer, ttl time.Duration) *AuthService {
	return &AuthService{
		portal:   portal,
		sessions: sessions,
		issuer:   issuer,
		ttl:      ttl,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token string
	Email string
}

// Login exchanges credentials with the upstream portal, stores the upstream
// token server-side and returns a dashboard JWT referencing the session.
// Empty credentials are rejected without contacting the portal.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	result, err := s.portal.Login(ctx, username, input.Password)
	if err != nil {
		return nil, err
	}

	sess := &model.Session{
		ID:            uuid.NewString(),
		Email:         username,
		UpstreamToken: result.AccessToken,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(sess.ID, sess.Email)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Token: token, Email: sess.Email}, nil
}

// Logout drops the session regardless of whether the upstream call succeeds;
// the user is logged out of the dashboard either way.
func (s *AuthService) Logout(ctx context.Context, sess *model.Session) error {
	_ = s.portal.Logout(ctx, sess.UpstreamToken)
	return s.sessions.Delete(ctx, sess.ID)
}
