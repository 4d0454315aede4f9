package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/storage"
	"go.uber.org/zap"
)

// KeySession holds the signed-in user, separate from the users collection.
const KeySession = "currentUser"

// Session persists the single active user of this installation.
type Session struct {
	kv     storage.KeyValue
	logger *zap.Logger
}

// NewSession binds a Session to kv.
func NewSession(kv storage.KeyValue, logger *zap.Logger) *Session {
	return &Session{kv: kv, logger: logger}
}

// Current returns the stored user, or nil when nobody is signed in. An
// unreadable entry counts as signed out.
func (s *Session) Current(ctx context.Context) (*models.User, error) {
	raw, err := s.kv.Get(ctx, KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn("stored session is unreadable", zap.Error(err))
		return nil, nil
	}
	return &u, nil
}

// Set replaces the stored user.
func (s *Session) Set(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, KeySession, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear signs the current user out.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
