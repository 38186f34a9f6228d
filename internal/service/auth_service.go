package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"storefront-service/internal/entity"
)

const sessionTTL = 24 * time.Hour

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10,11}$`)
)

// AuthService handles registration, login and session validation.
type AuthService struct {
	userRepo  UserRepo
	rdb       *redis.Client
	jwtSecret []byte
}

func NewAuthService(userRepo UserRepo, rdb *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		rdb:       rdb,
		jwtSecret: []byte(jwtSecret),
	}
}

type JwtCustomClaims struct {
	UserID int    `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register creates a new account after checking for a taken email and then
// a taken username, in that order.
func (s *AuthService) Register(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := validateRegistration(user); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user.CreatedAt = time.Now()
	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return created, nil
}

func validateRegistration(user *entity.User) error {
	if len(strings.TrimSpace(user.Fullname)) < 3 {
		return ErrInvalidInput
	}
	if len(user.Username) < 4 || len(user.Username) > 20 || !usernamePattern.MatchString(user.Username) {
		return ErrInvalidInput
	}
	if !emailPattern.MatchString(user.Email) {
		return ErrInvalidInput
	}
	if len(user.Password) < 6 {
		return ErrInvalidInput
	}
	if user.Phone != "" && !phonePattern.MatchString(user.Phone) {
		return ErrInvalidInput
	}
	return nil
}

// Authenticate resolves the login identifier against the email column
// first and falls back to the username, then compares the password by
// string equality. The store keeps passwords in plain text.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		user, err = s.userRepo.GetUserByUsername(ctx, identifier)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.Password != password {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// Login authenticates and issues a signed session token, kept in Redis
// keyed by email for later validation.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*entity.User, string, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, "", err
	}

	claims := &JwtCustomClaims{
		UserID: user.ID,
		Name:   user.Username,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tkn.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	if err := s.rdb.Set(ctx, sessionKey(user.Email), token, sessionTTL).Err(); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ValidateSession checks a presented token against the Redis copy for the
// given email.
func (s *AuthService) ValidateSession(ctx context.Context, email, token string) error {
	stored, err := s.rdb.Get(ctx, sessionKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		return err
	}

	if stored != token {
		return ErrSessionNotFound
	}

	return nil
}

// Logout drops the Redis session. A missing session is not an error.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	err := s.rdb.Del(ctx, sessionKey(email)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*entity.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update: only non-zero fields of the
// patch overwrite the stored record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, patch entity.User) (*entity.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Fullname != "" {
		user.Fullname = patch.Fullname
	}
	if patch.Phone != "" {
		user.Phone = patch.Phone
	}
	if patch.Address != "" {
		user.Address = patch.Address
	}
	if patch.Password != "" {
		user.Password = patch.Password
	}

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating user %d", userID)
		return nil, err
	}

	return updated, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.GetUsers(ctx)
}

// FindByEmail returns nil without an error when no account matches, so
// the lookup endpoint can answer with an empty list.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (s *AuthService) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (s *AuthService) DeleteUser(ctx context.Context, id int) error {
	return s.userRepo.DeleteUser(ctx, id)
}

func sessionKey(email string) string {
	return "session:" + email
}
