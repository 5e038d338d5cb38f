package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Service struct {
	repo          Repository
	blacklistRepo BlacklistRepository
}

func NewService(repo Repository, blacklistRepo BlacklistRepository) *Service {
	return &Service{
		repo:          repo,
		blacklistRepo: blacklistRepo,
	}
}

// NewRefreshToken returns a fresh opaque token and its storable hash.
func NewRefreshToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Create(ctx context.Context, sess *Session) error {
	return s.repo.Create(ctx, sess)
}

func (s *Service) GetByToken(ctx context.Context, token string) (Session, error) {
	return s.repo.GetByTokenHash(ctx, HashToken(token))
}

func (s *Service) GetByID(ctx context.Context, sessionID string) (Session, error) {
	return s.repo.GetByID(ctx, sessionID)
}

func (s *Service) ListByUserID(ctx context.Context, userID string) ([]Session, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *Service) DeleteByToken(ctx context.Context, token string) error {
	return s.repo.DeleteByTokenHash(ctx, HashToken(token))
}

func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

func (s *Service) Touch(ctx context.Context, sessionID string) error {
	return s.repo.UpdateLastUsed(ctx, sessionID)
}

func (s *Service) RevokeAccessToken(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	return s.blacklistRepo.AddToken(ctx, jti, userID, expiresAt)
}

// StartCleanup deletes expired sessions and blacklist rows on a timer
// until ctx is cancelled.
func (s *Service) StartCleanup(ctx context.Context, every time.Duration, logf func(format string, v ...any)) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.repo.CleanupExpired(ctx); err != nil {
					logf("session cleanup: %v", err)
				}
				if err := s.blacklistRepo.CleanupExpired(ctx); err != nil {
					logf("blacklist cleanup: %v", err)
				}
			}
		}
	}()
}
