package service

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	"github.com/kevinclancy/kboard/shared/logger"
	"github.com/kevinclancy/kboard/shared/utils"
)

type UserService interface {
	UpdateName(ctx context.Context, requester domain.User, id domain.UserId, name domain.UserName) (domain.User, error)
}

type User struct {
	storage   UserStorage
	validator UserValidator
}

type UserStorage interface {
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	UpdateUserName(ctx context.Context, id domain.UserId, name domain.UserName) (domain.User, error)
}

type UserValidator interface {
	Name(name string) error
}

func NewUser(storage UserStorage, validator UserValidator) UserService {
	return &User{storage: storage, validator: validator}
}

// UpdateName renames a user. Users may only rename themselves.
func (s *User) UpdateName(ctx context.Context, requester domain.User, id domain.UserId, name domain.UserName) (domain.User, error) {
	if _, err := s.storage.UserById(ctx, id); err != nil {
		return domain.User{}, err
	}
	if requester.Id != id {
		return domain.User{}, internal_errors.Unauthorized("You can only update your own profile")
	}
	if err := canWrite(requester); err != nil {
		return domain.User{}, err
	}
	if err := s.validator.Name(name); err != nil {
		return domain.User{}, err
	}
	return s.storage.UpdateUserName(ctx, id, strings.TrimSpace(name))
}

// UserAdmin backs the administrative CLI: account creation, roles, bans,
// token minting and registration reports.
type UserAdmin struct {
	storage      UserAdminStorage
	tokens       TokenIssuer
	emailPattern *regexp.Regexp
}

type UserAdminStorage interface {
	CreateUser(ctx context.Context, data domain.UserCreationData) (domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	SetModerator(ctx context.Context, id domain.UserId, moderator bool) (domain.User, error)
	SetBanned(ctx context.Context, id domain.UserId, banned bool) (domain.User, error)
	CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type TokenIssuer interface {
	NewToken(user domain.User) (string, error)
}

// NewUserAdmin takes the allowed email pattern already compiled. A nil
// pattern allows any address.
func NewUserAdmin(storage UserAdminStorage, tokens TokenIssuer, emailPattern *regexp.Regexp) *UserAdmin {
	return &UserAdmin{storage: storage, tokens: tokens, emailPattern: emailPattern}
}

func (a *UserAdmin) checkEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return internal_errors.BadRequest("Invalid email address")
	}
	if a.emailPattern != nil && !a.emailPattern.MatchString(email) {
		return internal_errors.BadRequest("Email domain is not allowed")
	}
	return nil
}

func (a *UserAdmin) Create(ctx context.Context, email domain.Email, name domain.UserName, password string, moderator bool) (domain.User, error) {
	if err := a.checkEmail(email); err != nil {
		return domain.User{}, err
	}
	if strings.TrimSpace(name) == "" {
		return domain.User{}, internal_errors.BadRequest("Name is required")
	}
	if len(password) < 8 {
		return domain.User{}, internal_errors.BadRequest("Password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	user, err := a.storage.CreateUser(ctx, domain.UserCreationData{
		Email:       email,
		Name:        name,
		PassHash:    hash,
		IsModerator: moderator,
	})
	if err != nil {
		return domain.User{}, err
	}
	logger.Log.Info("user created", "user_id", user.Id, "moderator", moderator)
	return user, nil
}

func (a *UserAdmin) SetModerator(ctx context.Context, email domain.Email, moderator bool) (domain.User, error) {
	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	return a.storage.SetModerator(ctx, user.Id, moderator)
}

func (a *UserAdmin) SetBanned(ctx context.Context, email domain.Email, banned bool) (domain.User, error) {
	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	return a.storage.SetBanned(ctx, user.Id, banned)
}

func (a *UserAdmin) Token(ctx context.Context, email domain.Email) (string, error) {
	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user.IsBanned {
		return "", internal_errors.Forbidden("Account suspended")
	}
	return a.tokens.NewToken(user)
}

// RegisteredOn counts users created on the UTC calendar day containing day.
func (a *UserAdmin) RegisteredOn(ctx context.Context, day time.Time) (int64, error) {
	day = day.UTC()
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	count, err := a.storage.CountUsersCreatedBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}
