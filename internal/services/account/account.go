// Package account содержит бизнес-логику регистрации, входа и выхода пользователей.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/magabrotheeeer/fakenews-detector/internal/lib/metrics"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/password"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
	"github.com/magabrotheeeer/fakenews-detector/internal/models"
	"github.com/magabrotheeeer/fakenews-detector/internal/storage"
)

var (
	// ErrUserExists — email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	// Оба случая намеренно неразличимы для клиента.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooShort — пароль короче MinPasswordLength.
	ErrPasswordTooShort = errors.New("password is too short")
	// ErrPasswordTooLong — пароль длиннее, чем принимает bcrypt.
	ErrPasswordTooLong = errors.New("password is too long")
)

const (
	// MinPasswordLength — минимальная длина пароля в символах.
	MinPasswordLength = 6
	// MaxPasswordBytes — предел bcrypt на длину пароля.
	MaxPasswordBytes = 72
)

// UserRepository описывает хранилище учётных данных.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionRegistry — операции реестра сессий, нужные сервису.
type SessionRegistry interface {
	Create(ctx context.Context, identity models.Identity) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Service реализует регистрацию, вход и выход.
type Service struct {
	users    UserRepository
	sessions SessionRegistry
	log      *slog.Logger
}

// New создаёт новый экземпляр Service.
func New(log *slog.Logger, users UserRepository, sessions SessionRegistry) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Signup регистрирует пользователя. Сессия при этом не создаётся.
// Занятый email проверяется раньше требований к паролю.
func (s *Service) Signup(ctx context.Context, name, email, rawPassword string) error {
	const op = "account.Signup"

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", op, ErrUserExists)
	case !errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = checkPassword(rawPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	uid, err := s.users.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	})
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%s: %w", op, ErrUserExists)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("uid", uid))
	return nil
}

func checkPassword(raw string) error {
	if utf8.RuneCountInString(raw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(raw) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Login проверяет пароль и создаёт сессию. Возвращает токен сессии и пользователя.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "account.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Error("stored password hash is unusable", slog.String("uid", user.UID), sl.Err(err))
		}
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.sessions.Create(ctx, models.Identity{Email: user.Email})
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Logout отзывает сессию. Пустой или неизвестный токен не является ошибкой.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "account.Logout"
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
