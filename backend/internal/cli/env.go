package cli

import (
	"context"
	"os"
	"time"

	"github.com/kevinclancy/kboard/backend/internal/service"
	"github.com/kevinclancy/kboard/backend/internal/storage/pg"
	"github.com/kevinclancy/kboard/backend/internal/utils"
	"github.com/kevinclancy/kboard/shared/config"
	"github.com/kevinclancy/kboard/shared/domain"
	"github.com/kevinclancy/kboard/shared/jwt"
	"github.com/kevinclancy/kboard/shared/logger"
	sharedpg "github.com/kevinclancy/kboard/shared/storage/pg"
)

type Store interface {
	Migrate(ctx context.Context) error
	VerifyCounters(ctx context.Context) ([]domain.CounterDrift, error)
}

type Boards interface {
	Create(ctx context.Context, title domain.BoardTitle, description string) (domain.Board, error)
}

type Users interface {
	Create(ctx context.Context, email domain.Email, name domain.UserName, password string, moderator bool) (domain.User, error)
	SetModerator(ctx context.Context, email domain.Email, moderator bool) (domain.User, error)
	SetBanned(ctx context.Context, email domain.Email, banned bool) (domain.User, error)
	Token(ctx context.Context, email domain.Email) (string, error)
	RegisteredOn(ctx context.Context, day time.Time) (int64, error)
}

// Env is everything a command may touch.
type Env struct {
	Store  Store
	Boards Boards
	Users  Users
	Close  func()
}

type Opener func(ctx context.Context, configFolder string) (*Env, error)

// OpenEnv loads config and connects to the database. Logs go to stderr so
// stdout carries only command output.
func OpenEnv(ctx context.Context, configFolder string) (*Env, error) {
	cfg := config.MustLoad(configFolder)
	logger.InitializeTo(os.Stderr, cfg.Public.LogLevel, cfg.Public.LogJSON)

	emailPattern, err := cfg.Public.EmailDomainPattern()
	if err != nil {
		return nil, err
	}

	storage, err := pg.New(ctx, cfg.Private.Pg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		return nil, err
	}

	validator := utils.NewTextValidator(cfg.Public.MaxTitleLength, cfg.Public.MaxBodyLength)
	return &Env{
		Store:  storage,
		Boards: service.NewBoard(storage, validator),
		Users:  service.NewUserAdmin(storage, jwt.New(cfg.JwtKey(), cfg.JwtTTL()), emailPattern),
		Close:  func() { storage.Cleanup() },
	}, nil
}
