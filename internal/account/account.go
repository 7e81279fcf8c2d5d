// Package account is the accounts half of the mock backend: user
// records, login and the current-session marker, all held in the
// injected storage backend.
package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ministore/internal/models"
	"ministore/internal/storage"
	"ministore/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput covers blank name/email, a malformed email or a
	// password shorter than 6 characters.
	ErrInvalidInput = errors.New("invalid registration input")

	// ErrEmailTaken enforces email uniqueness across accounts.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when no user matches the email
	// and password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service implements the mocked account API.
type Service struct {
	storage storage.Store
	latency time.Duration
	logger  *zap.Logger
}

// NewService creates an account service. latency simulates the round
// trip of a real auth API; pass zero for none.
func NewService(st storage.Store, latency time.Duration) *Service {
	return &Service{
		storage: st,
		latency: latency,
		logger:  util.GetLogger(),
	}
}

// Register validates the input, creates the user with a weakly hashed
// password and establishes a session for it. The new session user is
// returned on success.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.SessionUser, error) {
	if err := util.Delay(ctx, s.latency); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(email) == "" ||
		!emailPattern.MatchString(email) ||
		len(password) < 6 {
		return nil, ErrInvalidInput
	}

	users := s.readUsers(ctx)
	for _, u := range users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: HashPassword(password),
	}
	users = append(users, user)

	if err := s.storage.Set(ctx, storage.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	session := &models.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email}
	if err := s.storage.Set(ctx, storage.KeyCurrentUser, session); err != nil {
		return nil, fmt.Errorf("failed to establish session: %w", err)
	}

	util.RegistrationsTotal.Inc()
	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return session, nil
}

// Login matches email plus password hash against the stored users and
// establishes a session on success.
func (s *Service) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	if err := util.Delay(ctx, s.latency); err != nil {
		return nil, err
	}

	hashed := HashPassword(password)
	for _, u := range s.readUsers(ctx) {
		if u.Email == email && u.Password == hashed {
			session := &models.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email}
			if err := s.storage.Set(ctx, storage.KeyCurrentUser, session); err != nil {
				return nil, fmt.Errorf("failed to establish session: %w", err)
			}
			return session, nil
		}
	}

	util.LoginFailuresTotal.Inc()
	return nil, ErrInvalidCredentials
}

// CurrentUser returns the active session, or nil when logged out. A
// corrupted session marker is treated as no session.
func (s *Service) CurrentUser(ctx context.Context) *models.SessionUser {
	var session models.SessionUser
	err := s.storage.Get(ctx, storage.KeyCurrentUser, &session)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Ignoring unreadable session marker", zap.Error(err))
		}
		return nil
	}
	if session.ID == "" {
		return nil
	}
	return &session
}

// Logout clears the session marker.
func (s *Service) Logout(ctx context.Context) error {
	return s.storage.Delete(ctx, storage.KeyCurrentUser)
}

// readUsers loads the user list, treating absent or unreadable storage
// as an empty list.
func (s *Service) readUsers(ctx context.Context) []models.User {
	var users []models.User
	err := s.storage.Get(ctx, storage.KeyUsers, &users)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Ignoring unreadable user list", zap.Error(err))
		}
		return nil
	}
	return users
}

// HashPassword is an intentionally weak, non-cryptographic checksum,
// kept because this demo stores no real secrets. A production build
// must replace it with a vetted password hashing algorithm such as
// bcrypt or argon2id.
func HashPassword(password string) string {
	var h int32
	for _, r := range password {
		h = (h << 5) - h + r
	}
	return strconv.FormatInt(int64(h), 10)
}
