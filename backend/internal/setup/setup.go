package setup

import (
	"context"
	"time"

	"github.com/kevinclancy/kboard/backend/internal/handler"
	"github.com/kevinclancy/kboard/backend/internal/service"
	"github.com/kevinclancy/kboard/backend/internal/storage/pg"
	"github.com/kevinclancy/kboard/backend/internal/utils"
	"github.com/kevinclancy/kboard/shared/config"
	"github.com/kevinclancy/kboard/shared/jwt"
	"github.com/kevinclancy/kboard/shared/markdown"
	mw "github.com/kevinclancy/kboard/shared/middleware"
	"github.com/kevinclancy/kboard/shared/middleware/ratelimiter"
	sharedpg "github.com/kevinclancy/kboard/shared/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	PostLimiter    *ratelimiter.UserRateLimiter
	SearchLimiter  *ratelimiter.UserRateLimiter
	Jwt            jwt.JwtService
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	validator := utils.NewTextValidator(cfg.Public.MaxTitleLength, cfg.Public.MaxBodyLength)

	services := handler.Services{
		Board:  service.NewBoard(storage, validator),
		Thread: service.NewThread(storage, validator, service.UTCClock),
		Reply:  service.NewReply(storage, validator, service.UTCClock),
		Search: service.NewSearch(storage, cfg.Public.DefaultSearchLimit, cfg.Public.MaxSearchLimit),
		User:   service.NewUser(storage, validator),
	}
	h := handler.New(services, markdown.New(), storage, cfg.Public.DefaultPageSize)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService, storage, cfg.Public.SecureCookies),
		PostLimiter:    ratelimiter.NewUserRateLimiter(cfg.Public.PostRatePerSecond, cfg.Public.PostBurst, time.Hour),
		SearchLimiter:  ratelimiter.NewUserRateLimiter(cfg.Public.SearchRatePerIP, cfg.Public.SearchBurst, 10*time.Minute),
		Jwt:            jwtService,
	}, nil
}

// Close releases the pool and stops limiter timers.
func (d *Dependencies) Close() {
	d.PostLimiter.Stop()
	d.SearchLimiter.Stop()
	d.Storage.Cleanup()
}
