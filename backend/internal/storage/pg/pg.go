package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/kevinclancy/kboard/shared/config"
	"github.com/kevinclancy/kboard/shared/logger"
	sharedpg "github.com/kevinclancy/kboard/shared/storage/pg"
)

//go:embed migrations/init.sql
var initSQL string

type Storage struct {
	db  *sql.DB
	now func() time.Time
}

func New(ctx context.Context, pgCfg config.Pg, connCfg sharedpg.ConnectionConfig) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", pgCfg.Host, "dbname", pgCfg.Dbname)
	db, err := sharedpg.Connect(ctx, pgCfg, connCfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate applies the embedded schema. The script is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, initSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// stamp returns t, or the current time when t is zero.
func (s *Storage) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t.UTC()
}
