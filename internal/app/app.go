package app

import (
	"context"
	"fmt"
	"time"

	"taskmanager/internal/config"
	"taskmanager/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	cfg    config.Config
	log    *logrus.Logger
	pg     *pgxpool.Pool
	sqlite *gorm.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, log *logrus.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var stores Stores
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(cfg.DB.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		a.sqlite = db
		stores = SQLiteStores(db)
		log.WithField("path", cfg.DB.SQLitePath).Info("using sqlite storage")
	default:
		if err := runMigrations(cfg.DB.PGDSN, log); err != nil {
			return nil, err
		}
		pool, err := newPostgres(cfg.DB.PGDSN)
		if err != nil {
			return nil, err
		}
		a.pg = pool
		stores = PostgresStores(pool)
		log.Info("using postgres storage")
	}

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.redis = rdb

	a.router = NewRouter(cfg, Deps{Stores: stores, Redis: rdb, Logger: log})
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.sqlite != nil {
		if sqlDB, err := a.sqlite.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return nil
}

// PostgresStores builds the pgx-backed repositories.
func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:      repo.NewPGUserRepo(pool),
		Categories: repo.NewPGCategoryRepo(pool),
		Tags:       repo.NewPGTagRepo(pool),
		Tasks:      repo.NewPGTaskRepo(pool),
		Subtasks:   repo.NewPGSubtaskRepo(pool),
	}
}

// SQLiteStores builds the gorm-backed repositories.
func SQLiteStores(db *gorm.DB) Stores {
	return Stores{
		Users:      repo.NewGormUserRepo(db),
		Categories: repo.NewGormCategoryRepo(db),
		Tags:       repo.NewGormTagRepo(db),
		Tasks:      repo.NewGormTaskRepo(db),
		Subtasks:   repo.NewGormSubtaskRepo(db),
	}
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runMigrations(dsn string, log *logrus.Logger) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	return repo.Migrate(db, "postgres", log)
}
