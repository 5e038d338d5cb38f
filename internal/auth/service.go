// Package auth owns signup, login and the token lifecycle.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"bookbuddy/internal/platform/crypto"
	"bookbuddy/internal/session"
	"bookbuddy/internal/user"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid or expired token")
)

const (
	accessTokenTTL      = 15 * time.Minute
	refreshTokenTTL     = 30 * 24 * time.Hour
	rememberMeTTL       = 90 * 24 * time.Hour
	resetTokenTTL       = time.Hour
	fallbackRevokeAfter = 24 * time.Hour
)

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type Service struct {
	secret         string
	userService    *user.Service
	sessionService *session.Service
}

func NewService(secret string, userService *user.Service, sessionService *session.Service) *Service {
	return &Service{
		secret:         secret,
		userService:    userService,
		sessionService: sessionService,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Handle   string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}
	return s.userService.Register(ctx, in.Email, in.Name, in.Handle, hash)
}

func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool, userAgent, ipAddress string) (TokenPair, error) {
	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil || !crypto.VerifyPassword(u.PasswordHash, password) {
		return TokenPair{}, ErrUnauthorized
	}
	return s.issueTokens(ctx, u.ID, rememberMe, userAgent, ipAddress)
}

// Refresh rotates the refresh token: the presented one is spent whether
// or not a new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	sess, err := s.sessionService.GetByToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, ErrUnauthorized
	}
	if _, err := s.userService.GetByID(ctx, sess.UserID); err != nil {
		return TokenPair{}, ErrUnauthorized
	}
	if err := s.sessionService.DeleteByToken(ctx, refreshToken); err != nil {
		return TokenPair{}, err
	}
	return s.issueTokens(ctx, sess.UserID, sess.RememberMe, sess.UserAgent, sess.IPAddress)
}

func (s *Service) issueTokens(ctx context.Context, userID string, rememberMe bool, userAgent, ipAddress string) (TokenPair, error) {
	accessToken, _, err := crypto.GenerateToken(s.secret, userID, accessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, tokenHash, err := session.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	ttl := refreshTokenTTL
	if rememberMe {
		ttl = rememberMeTTL
	}
	sess := &session.Session{
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		UserAgent:        userAgent,
		IPAddress:        ipAddress,
		RememberMe:       rememberMe,
		ExpiresAt:        time.Now().Add(ttl),
	}
	if err := s.sessionService.Create(ctx, sess); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(accessTokenTTL.Seconds()),
	}, nil
}

// Logout blacklists the access token and drops the refresh session.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken, userID string) error {
	claims, err := crypto.ParseToken(s.secret, accessToken)
	if err != nil {
		return ErrUnauthorized
	}

	expiresAt := time.Now().Add(fallbackRevokeAfter)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.sessionService.RevokeAccessToken(ctx, claims.ID, userID, expiresAt); err != nil {
		return err
	}

	if refreshToken != "" {
		return s.sessionService.DeleteByToken(ctx, refreshToken)
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.VerifyPassword(u.PasswordHash, current) {
		return ErrUnauthorized
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userService.UpdatePassword(ctx, userID, hash)
}

// ForgotPassword never reveals whether the email exists. The reset link
// is logged instead of emailed; there is no mailer yet.
func (s *Service) ForgotPassword(ctx context.Context, email, resetBaseURL string) error {
	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := crypto.GenerateResetToken(s.secret, u.Email, resetTokenTTL)
	if err != nil {
		return err
	}

	log.Printf("password reset link for %s: %s/reset-password?token=%s", u.Email, resetBaseURL, token)
	return nil
}

// ResetPassword consumes a reset token and logs the user out everywhere.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := crypto.VerifyResetToken(s.secret, token)
	if err != nil {
		return ErrInvalidToken
	}

	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		return ErrInvalidToken
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userService.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	return s.sessionService.DeleteAllForUser(ctx, u.ID)
}
