package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boxtube/internal/models"
	"github.com/desertthunder/boxtube/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Storage keys for the account collection and the active-identity mirror.
// These are global, not identity-scoped: the user list is what identities are
// resolved against.
const (
	usersKey = "boxtube_users"
	authKey  = "boxtube_auth"
)

// authMirror is the persisted active-identity record: just enough to resolve
// the account against the user list on startup. It never carries the
// credential hash.
type authMirror struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserStore owns the registered-user list and the active identity.
//
// Credentials are stored as bcrypt hashes. User records are never
// hard-deleted; logout only clears the active identity.
type UserStore struct {
	kv      KV
	logger  *log.Logger
	users   []models.User
	current *models.User
}

// NewUserStore creates a [UserStore] and loads both collections from storage.
func NewUserStore(kv KV, logger *log.Logger) *UserStore {
	store := &UserStore{kv: kv, logger: logger}
	store.users = loadCollection(kv, logger, usersKey, []models.User{})

	active := loadCollection(kv, logger, authKey, authMirror{})
	if active.ID != "" {
		// Resolve against the user list so a stale mirror does not resurrect
		// an account that no longer exists.
		for i := range store.users {
			if store.users[i].ID == active.ID {
				store.current = &store.users[i]
				break
			}
		}
	}

	return store
}

// Current returns the active user, or nil when browsing anonymously.
func (s *UserStore) Current() *models.User {
	return s.current
}

// ScopeID returns the identity scope for partitioned collections: the active
// user id, or empty for anonymous.
func (s *UserStore) ScopeID() string {
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Signup registers a new account and sets it as the active identity.
//
// Fails when the username collides case-insensitively with an existing
// account, or when the password is shorter than [models.MinPasswordLength].
func (s *UserStore) Signup(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if len(password) < models.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrInvalidInput, models.MinPasswordLength)
	}

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return nil, shared.ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             "user-" + shared.GenerateID(),
		Username:       username,
		PasswordHash:   string(hash),
		CreatedAt:      time.Now(),
		Subscriptions:  []models.Subscription{},
		ProfilePicture: shared.AvatarURL(username),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	s.users = append(s.users, user)
	s.current = &s.users[len(s.users)-1]
	s.persist()

	return s.current, nil
}

// Login resolves the case-insensitive username and verifies the credential,
// then sets the matched account as the active identity.
func (s *UserStore) Login(username, password string) (*models.User, error) {
	for i := range s.users {
		if !strings.EqualFold(s.users[i].Username, username) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(s.users[i].PasswordHash), []byte(password)) != nil {
			return nil, shared.ErrInvalidCredentials
		}
		s.current = &s.users[i]
		s.persistAuth()
		return s.current, nil
	}
	return nil, shared.ErrInvalidCredentials
}

// Logout clears the active identity. The account record is untouched.
func (s *UserStore) Logout() {
	s.current = nil
	if err := s.kv.Delete(authKey); err != nil {
		s.logger.Error("failed to clear auth state", "error", err)
	}
}

// ProfileUpdate holds the mutable profile fields. Empty fields are left
// unchanged; id and creation timestamp are immutable.
type ProfileUpdate struct {
	Username       string
	ProfilePicture string
}

// UpdateProfile merges the update into the active user's record.
func (s *UserStore) UpdateProfile(update ProfileUpdate) (*models.User, error) {
	if s.current == nil {
		return nil, shared.ErrNotLoggedIn
	}

	if update.Username != "" {
		// A case-only change of the user's own name never collides.
		if !strings.EqualFold(update.Username, s.current.Username) {
			for _, user := range s.users {
				if user.ID != s.current.ID && strings.EqualFold(user.Username, update.Username) {
					return nil, shared.ErrUsernameTaken
				}
			}
		}
		s.current.Username = strings.TrimSpace(update.Username)
	}
	if update.ProfilePicture != "" {
		s.current.ProfilePicture = update.ProfilePicture
	}

	s.persist()
	return s.current, nil
}

// SubscribeToChannel toggles membership for the channel and returns the
// resulting state: true when the call subscribed, false when it unsubscribed.
func (s *UserStore) SubscribeToChannel(channelID, title, thumbnail string) (bool, error) {
	if s.current == nil {
		return false, shared.ErrNotLoggedIn
	}

	if s.current.Subscribed(channelID) {
		kept := s.current.Subscriptions[:0]
		for _, sub := range s.current.Subscriptions {
			if sub.ChannelID != channelID {
				kept = append(kept, sub)
			}
		}
		s.current.Subscriptions = kept
		s.persist()
		return false, nil
	}

	s.current.Subscriptions = append(s.current.Subscriptions, models.Subscription{
		ChannelID:        channelID,
		ChannelTitle:     title,
		ChannelThumbnail: thumbnail,
		SubscribedAt:     time.Now(),
	})
	s.persist()
	return true, nil
}

// IsSubscribed reports membership for the active user. Anonymous browsing is
// never subscribed.
func (s *UserStore) IsSubscribed(channelID string) bool {
	return s.current != nil && s.current.Subscribed(channelID)
}

// Users returns the registered accounts.
func (s *UserStore) Users() []models.User {
	return s.users
}

// persist writes the user list and, when logged in, the active-identity
// mirror.
func (s *UserStore) persist() {
	saveCollection(s.kv, s.logger, usersKey, s.users)
	s.persistAuth()
}

func (s *UserStore) persistAuth() {
	if s.current != nil {
		saveCollection(s.kv, s.logger, authKey, authMirror{ID: s.current.ID, Username: s.current.Username})
	}
}
