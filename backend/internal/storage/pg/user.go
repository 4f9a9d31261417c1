package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	sharedpg "github.com/kevinclancy/kboard/shared/storage/pg"
)

const userColumns = "id, pid, email, password, name, is_moderator, is_banned, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Pid, &u.Email, &u.PassHash, &u.Name, &u.IsModerator, &u.IsBanned, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *Storage) CreateUser(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	now := s.now()
	user, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (pid, email, password, name, is_moderator, is_banned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6)
		RETURNING `+userColumns,
		uuid.New(), data.Email, data.PassHash, data.Name, data.IsModerator, now,
	))
	if err != nil {
		if code, _ := sharedpg.ErrorCode(err); code == sharedpg.UniqueViolation {
			return domain.User{}, internal_errors.BadRequest("User with this email already exists")
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) userBy(ctx context.Context, column string, value any) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	return s.userBy(ctx, "id", id)
}

func (s *Storage) UserByPid(ctx context.Context, pid uuid.UUID) (domain.User, error) {
	return s.userBy(ctx, "pid", pid)
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	return s.userBy(ctx, "email", email)
}

func (s *Storage) updateUser(ctx context.Context, id domain.UserId, set string, value any) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"UPDATE users SET "+set+" = $2, updated_at = $3 WHERE id = $1 RETURNING "+userColumns,
		id, value, s.now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *Storage) UpdateUserName(ctx context.Context, id domain.UserId, name domain.UserName) (domain.User, error) {
	return s.updateUser(ctx, id, "name", name)
}

func (s *Storage) SetModerator(ctx context.Context, id domain.UserId, moderator bool) (domain.User, error) {
	return s.updateUser(ctx, id, "is_moderator", moderator)
}

func (s *Storage) SetBanned(ctx context.Context, id domain.UserId, banned bool) (domain.User, error) {
	return s.updateUser(ctx, id, "is_banned", banned)
}

// CountUsersCreatedBetween counts registrations in [from, to).
func (s *Storage) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2", from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
