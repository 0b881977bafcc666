// Package session persists the device's login state: who is signed in and
// which profile image the user picked. State lives in the session key-value
// table and survives restarts.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/melodica-app/melodica/internal/dbx"
	"github.com/melodica-app/melodica/internal/repositories/kv"
)

// Keys used in the session table. The layout mirrors the mobile client so
// existing local databases keep working.
const (
	keyToken        = "user_token"
	keyUsername     = "profile_username"
	keyEmail        = "profile_email"
	keyImage        = "profile_image"
	keyImageUpdated = "profile_image_updated"
)

// Event describes a session state change delivered to subscribers.
type Event int

const (
	EventStarted Event = iota
	EventEnded
	EventProfileChanged
	EventProfileImageChanged
)

func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventEnded:
		return "ended"
	case EventProfileChanged:
		return "profile_changed"
	case EventProfileImageChanged:
		return "profile_image_changed"
	default:
		return "unknown"
	}
}

// Store is the typed session store. Mutations run inside a transaction and
// notify subscribers synchronously on success; consumers that used to poll
// the underlying keys subscribe instead.
type Store struct {
	db *sql.DB

	mu   sync.Mutex
	subs []func(Event)
}

// NewStore returns a Store over the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

// Subscribe registers fn to be called after every successful mutation.
// Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// StartSession marks a user as signed in and caches the profile identity.
// The token is an opaque marker; its only meaning is presence.
func (s *Store) StartSession(ctx context.Context, email, username string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyToken, uuid.NewString()); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, keyUsername, username)
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	s.notify(EventStarted)
	return nil
}

// CurrentEmail returns the signed-in user's email, or "" when anonymous.
func (s *Store) CurrentEmail(ctx context.Context) (string, error) {
	repo := s.repo(s.db)
	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", nil
	}
	return repo.Get(ctx, keyEmail)
}

// RefreshProfile updates the cached identity after a profile edit so the
// session never points at a stale email.
func (s *Store) RefreshProfile(ctx context.Context, email, username string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, keyUsername, username)
	})
	if err != nil {
		return fmt.Errorf("failed to refresh profile: %w", err)
	}
	s.notify(EventProfileChanged)
	return nil
}

// SetProfileImage stores ref, a file URI or "asset:<name>".
func (s *Store) SetProfileImage(ctx context.Context, ref string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyImage, ref); err != nil {
			return err
		}
		return repo.Set(ctx, keyImageUpdated, "true")
	})
	if err != nil {
		return fmt.Errorf("failed to set profile image: %w", err)
	}
	s.notify(EventProfileImageChanged)
	return nil
}

// ProfileImage returns the stored image reference; "" means the default image.
func (s *Store) ProfileImage(ctx context.Context) (string, error) {
	return s.repo(s.db).Get(ctx, keyImage)
}

// EndSession clears every session key. Safe to call when already anonymous.
func (s *Store) EndSession(ctx context.Context) error {
	if err := s.repo(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	s.notify(EventEnded)
	return nil
}
