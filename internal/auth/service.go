package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"store-it/internal/models"
	"store-it/internal/utils"
)

// UserStore is the account persistence the credential service needs.
// Lookups return (nil, nil) for unknown users.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// Service implements signup, login and profile edits.
type Service struct {
	users    UserStore
	sessions *SessionManager
	log      *zap.SugaredLogger
}

func NewService(users UserStore, sessions *SessionManager, log *zap.SugaredLogger) *Service {
	return &Service{users: users, sessions: sessions, log: log}
}

// Signup creates an account and an initial session, so signup doubles as
// login. The username existence check is only a fast-path rejection; the
// store's unique index is the real enforcement and duplicate inserts also
// come back as utils.ErrConflict.
func (s *Service) Signup(ctx context.Context, name, username, password string) (*models.User, string, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, "", utils.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	scrubbed := user.Scrubbed()
	return &scrubbed, token, nil
}

// Login verifies credentials and issues a fresh session; prior sessions
// are untouched.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, "", utils.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	scrubbed := user.Scrubbed()
	return &scrubbed, token, nil
}

// UpdateProfile changes the user's display name and, when a new password
// is supplied, rehashes it. Policy checks happen at the handler boundary.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, password string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if name != "" {
		user.Name = name
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	scrubbed := user.Scrubbed()
	return &scrubbed, nil
}
