package app

import (
	"context"
	"fmt"

	"github.com/Tedbot2000/todo-genie/internal/config"
	"github.com/Tedbot2000/todo-genie/internal/infrastructure/client"
	"github.com/Tedbot2000/todo-genie/internal/repository"
	"go.uber.org/zap"
)

// Storage - репозитории выбранного драйвера и его проверка/закрытие
type Storage struct {
	Tasks  repository.ITaskRepository
	Users  repository.IUserRepository
	health func(ctx context.Context) error
	close  func()
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.health(ctx)
}

func (s *Storage) Close() {
	s.close()
}

// OpenStorage подключается к Postgres (с миграциями, если migrate=true)
// или к встроенной SQLite
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger, migrate bool) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		return openSQLite(cfg.Storage.SQLitePath, logger)
	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg.Postgres, logger, migrate)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openSQLite(path string, logger *zap.Logger) (*Storage, error) {
	sqlite, err := client.NewSQLiteClient(path)
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(sqlite.DB); err != nil {
		sqlite.Close()
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	logger.Info("connected to sqlite", zap.String("path", path))

	return &Storage{
		Tasks:  repository.NewGormTaskRepository(sqlite.DB),
		Users:  repository.NewGormUserRepository(sqlite.DB),
		health: sqlite.HealthCheck,
		close: func() {
			if err := sqlite.Close(); err != nil {
				logger.Warn("failed to close sqlite", zap.Error(err))
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger, migrate bool) (*Storage, error) {
	if migrate {
		if err := client.RunMigrations(cfg.MigrationsPath, cfg.URL(), false); err != nil {
			return nil, err
		}
		logger.Info("migrations applied", zap.String("source", cfg.MigrationsPath))
	}

	pg, err := client.NewPostgresClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("db", cfg.Name))

	return &Storage{
		Tasks:  repository.NewTaskRepository(pg.Pool),
		Users:  repository.NewUserRepository(pg.Pool),
		health: pg.HealthCheck,
		close:  pg.Close,
	}, nil
}
