package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/storage"
	"go.uber.org/zap"
)

// Keys under which each collection is persisted.
const (
	KeyProperties = "properties"
	KeyUsers      = "users"
	KeyMessages   = "messages"
	KeyWishlist   = "wishlist"
)

// ErrPersist wraps any failure to write a collection back to the backing store.
var ErrPersist = errors.New("persist collection")

// Store owns the properties, users, messages and wishlist collections.
// Every mutation rewrites the whole affected collection; a failed write
// leaves the in-memory state untouched.
type Store struct {
	kv     storage.KeyValue
	logger *zap.Logger
	now    func() time.Time
	seed   func(time.Time) []models.Property

	mu         sync.RWMutex
	properties []models.Property
	users      []models.User
	messages   []models.Message
	wishlist   []string
}

// Option customises a Store at construction.
type Option func(*Store)

// WithClock overrides time.Now for seeding.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed replaces the default seed catalogue.
func WithSeed(seed func(time.Time) []models.Property) Option {
	return func(s *Store) { s.seed = seed }
}

// New loads every collection from kv, falling back to defaults, and writes the
// resolved state back so a missing or corrupt key is normalised.
func New(ctx context.Context, kv storage.KeyValue, logger *zap.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
		seed:   SeedProperties,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if err := s.persistAll(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	var (
		properties []models.Property
		users      []models.User
		messages   []models.Message
		wishlist   []string
		corrupt    bool
	)

	read := func(key string, dst any) (bool, error) {
		raw, err := s.kv.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("load %s: %w", key, err)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			s.logger.Warn("stored collection is unreadable", zap.String("key", key), zap.Error(err))
			corrupt = true
			return false, nil
		}
		return true, nil
	}

	hasProperties, err := read(KeyProperties, &properties)
	if err != nil {
		return err
	}
	if _, err := read(KeyUsers, &users); err != nil {
		return err
	}
	if _, err := read(KeyMessages, &messages); err != nil {
		return err
	}
	if _, err := read(KeyWishlist, &wishlist); err != nil {
		return err
	}

	if corrupt {
		s.logger.Warn("resetting store to defaults after parse failure")
		properties, users, messages, wishlist = s.seed(s.now()), nil, nil, nil
	} else if !hasProperties {
		properties = s.seed(s.now())
	}

	s.properties = orEmpty(properties)
	s.users = orEmpty(users)
	s.messages = orEmpty(messages)
	s.wishlist = orEmpty(wishlist)

	s.logger.Info("store loaded",
		zap.Int("properties", len(s.properties)),
		zap.Int("users", len(s.users)),
		zap.Int("messages", len(s.messages)),
		zap.Int("wishlist", len(s.wishlist)),
	)
	return nil
}

func (s *Store) persistAll(ctx context.Context) error {
	if err := s.put(ctx, KeyProperties, s.properties); err != nil {
		return err
	}
	if err := s.put(ctx, KeyUsers, s.users); err != nil {
		return err
	}
	if err := s.put(ctx, KeyMessages, s.messages); err != nil {
		return err
	}
	return s.put(ctx, KeyWishlist, s.wishlist)
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrPersist, key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.logger.Error("write collection failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w %s: %w", ErrPersist, key, err)
	}
	return nil
}

// Properties returns every listing, newest addition first.
func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.properties))
	for i, p := range s.properties {
		out[i] = p.Clone()
	}
	return out
}

// Property looks a single listing up by id.
func (s *Store) Property(id string) (models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Property{}, false
}

// AddProperty prepends p. The id must already be set; uniqueness is not checked.
func (s *Store) AddProperty(ctx context.Context, p models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Property, 0, len(s.properties)+1)
	next = append(next, p.Clone())
	next = append(next, s.properties...)
	if err := s.put(ctx, KeyProperties, next); err != nil {
		return err
	}
	s.properties = next
	return nil
}

// UpdateProperty merges patch into the listing with the given id. It reports
// false, without error, when no such listing exists.
func (s *Store) UpdateProperty(ctx context.Context, id string, patch models.PropertyPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.properties, func(p models.Property) bool { return p.ID == id })
	if idx < 0 {
		return false, nil
	}

	next := slices.Clone(s.properties)
	updated := patch.Apply(next[idx])
	updated.ID = id
	next[idx] = updated
	if err := s.put(ctx, KeyProperties, next); err != nil {
		return false, err
	}
	s.properties = next
	return true, nil
}

// DeleteProperty hard-deletes the listing and drops it from the wishlist.
// Inquiries that reference it are kept. It reports false when nothing matched.
func (s *Store) DeleteProperty(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.properties), func(p models.Property) bool { return p.ID == id })
	if len(next) == len(s.properties) {
		return false, nil
	}
	if err := s.put(ctx, KeyProperties, next); err != nil {
		return false, err
	}

	if slices.Contains(s.wishlist, id) {
		nextWishlist := slices.DeleteFunc(slices.Clone(s.wishlist), func(w string) bool { return w == id })
		if err := s.put(ctx, KeyWishlist, nextWishlist); err != nil {
			if rollbackErr := s.put(ctx, KeyProperties, s.properties); rollbackErr != nil {
				s.logger.Error("rollback of properties failed", zap.String("property_id", id), zap.Error(rollbackErr))
			}
			return false, err
		}
		s.wishlist = nextWishlist
	}
	s.properties = next
	return true, nil
}

// Messages returns every inquiry the user sent or received, newest first.
func (s *Store) Messages(userID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out
}

// AddMessage prepends m.
func (s *Store) AddMessage(ctx context.Context, m models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Message, 0, len(s.messages)+1)
	next = append(next, m)
	next = append(next, s.messages...)
	if err := s.put(ctx, KeyMessages, next); err != nil {
		return err
	}
	s.messages = next
	return nil
}

// Wishlist returns the saved property ids. Order carries no meaning.
func (s *Store) Wishlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.wishlist)
}

// InWishlist reports whether id is saved.
func (s *Store) InWishlist(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.wishlist, id)
}

// ToggleWishlist flips membership of id and returns the new membership.
func (s *Store) ToggleWishlist(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := !slices.Contains(s.wishlist, id)
	var next []string
	if saved {
		next = append(slices.Clone(s.wishlist), id)
	} else {
		next = slices.DeleteFunc(slices.Clone(s.wishlist), func(w string) bool { return w == id })
	}
	if err := s.put(ctx, KeyWishlist, next); err != nil {
		return !saved, err
	}
	s.wishlist = next
	return saved, nil
}

// Users returns every known account.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// UserByEmail finds an account by case-insensitive email.
func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// SaveUser inserts u, or replaces the account with the same email while
// keeping its id.
func (s *Store) SaveUser(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.users)
	idx := slices.IndexFunc(next, func(existing models.User) bool { return strings.EqualFold(existing.Email, u.Email) })
	if idx >= 0 {
		u.ID = next[idx].ID
		next[idx] = u
	} else {
		next = append(next, u)
	}
	if err := s.put(ctx, KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.users = next
	return u, nil
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
