package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/career-coach/internal/config"
	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/domain/resume"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/career-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/career-coach/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbMaxOpenConns    = 20
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

type repositories struct {
	users        user.Repository
	insights     insight.Repository
	resumes      resume.Repository
	coverLetters coverletter.Repository
}

// openRepositories builds the repositories for the configured storage driver.
// The returned close func releases the database pool, if any.
func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		closeFn = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.WarnContext(ctx, "using in-memory storage, data is lost on restart")
		repos = repositories{
			users:        memory.NewUserRepository(),
			insights:     memory.NewInsightRepository(),
			resumes:      memory.NewResumeRepository(),
			coverLetters: memory.NewCoverLetterRepository(),
		}
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		closeFn = db.Close
		repos = repositories{
			users:        postgres.NewUserRepository(db),
			insights:     postgres.NewInsightRepository(db),
			resumes:      postgres.NewResumeRepository(db),
			coverLetters: postgres.NewCoverLetterRepository(db),
		}
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		repos.insights = cache.NewInsightRepository(repos.insights, cfg.CacheTTL)
	}

	return repos, closeFn, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
