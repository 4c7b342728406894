// Package session resolves which user's financial document the record
// store addresses. It owns the session marker and the user registry,
// never the financial records themselves.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/kv"
)

const (
	// CurrentUserKey holds the logged-in user's public profile.
	CurrentUserKey = "currentUser"
	// UsersKey holds the registry of all registered users.
	UsersKey = "users"
	// LegacyDataKey is the pre-multi-user document slot.
	LegacyDataKey = "financialData"
)

// DocumentKey is the storage slot for one user's financial document.
func DocumentKey(userID string) string {
	return "financialData_" + userID
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingField       = errors.New("email and password are required")
)

// Manager reads and writes session state through the key-value store.
type Manager struct {
	store kv.Store
}

func NewManager(store kv.Store) *Manager {
	return &Manager{store: store}
}

// Current returns the logged-in user's profile, if any. A marker whose
// user no longer exists in the registry is treated as stale and cleared.
func (m *Manager) Current(ctx context.Context) (core.Profile, bool) {
	raw, ok, err := m.store.Get(ctx, CurrentUserKey)
	if err != nil {
		slog.ErrorContext(ctx, "read session marker", "error", err)
		return core.Profile{}, false
	}
	if !ok {
		return core.Profile{}, false
	}

	var profile core.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		slog.WarnContext(ctx, "malformed session marker, clearing", "error", err)
		_ = m.store.Delete(ctx, CurrentUserKey)
		return core.Profile{}, false
	}

	users, err := m.users(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "read user registry", "error", err)
		return core.Profile{}, false
	}
	for _, u := range users {
		if u.ID == profile.ID {
			return profile, true
		}
	}

	slog.WarnContext(ctx, "session marker for unknown user, clearing", "user_id", profile.ID)
	_ = m.store.Delete(ctx, CurrentUserKey)
	return core.Profile{}, false
}

// Register creates a new user. Email addresses are unique across the
// registry.
func (m *Manager) Register(ctx context.Context, email, password, name string) (core.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return core.Profile{}, ErrMissingField
	}

	users, err := m.users(ctx)
	if err != nil {
		return core.Profile{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return core.Profile{}, ErrEmailTaken
		}
	}

	user := core.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  password,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	users = append(users, user)
	if err := m.saveUsers(ctx, users); err != nil {
		return core.Profile{}, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return user.Profile(), nil
}

// Login matches credentials against the registry, persists the
// password-stripped profile as the session marker and runs the one-time
// legacy document migration.
func (m *Manager) Login(ctx context.Context, email, password string) (core.Profile, error) {
	users, err := m.users(ctx)
	if err != nil {
		return core.Profile{}, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			profile := u.Profile()
			raw, err := json.Marshal(profile)
			if err != nil {
				return core.Profile{}, err
			}
			if err := m.store.Set(ctx, CurrentUserKey, string(raw)); err != nil {
				return core.Profile{}, err
			}
			m.migrateLegacyDocument(ctx, u.ID)
			slog.InfoContext(ctx, "user logged in", "user_id", u.ID, "email", u.Email)
			return profile, nil
		}
	}

	return core.Profile{}, ErrInvalidCredentials
}

// Logout clears the session marker. Logging out while logged out is a
// no-op.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Delete(ctx, CurrentUserKey)
}

// migrateLegacyDocument copies the pre-multi-user document into the
// user's keyed slot, only if that slot is still empty. Failures are
// logged and swallowed: login must not fail over old data.
func (m *Manager) migrateLegacyDocument(ctx context.Context, userID string) {
	legacy, ok, err := m.store.Get(ctx, LegacyDataKey)
	if err != nil || !ok {
		return
	}
	_, exists, err := m.store.Get(ctx, DocumentKey(userID))
	if err != nil || exists {
		return
	}
	if err := m.store.Set(ctx, DocumentKey(userID), legacy); err != nil {
		slog.ErrorContext(ctx, "migrate legacy document", "user_id", userID, "error", err)
		return
	}
	slog.InfoContext(ctx, "legacy document migrated", "user_id", userID)
}

func (m *Manager) users(ctx context.Context) ([]core.User, error) {
	raw, ok, err := m.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []core.User{}, nil
	}
	var users []core.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *Manager) saveUsers(ctx context.Context, users []core.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, UsersKey, string(raw))
}
