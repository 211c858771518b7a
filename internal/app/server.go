package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Tedbot2000/todo-genie/internal/api"
	"github.com/Tedbot2000/todo-genie/internal/api/views"
	"github.com/Tedbot2000/todo-genie/internal/config"
	"github.com/Tedbot2000/todo-genie/internal/infrastructure/auth"
	"github.com/Tedbot2000/todo-genie/internal/infrastructure/client"
	"github.com/Tedbot2000/todo-genie/internal/usecase"
	"go.uber.org/zap"
)

// NewAuthService собирает сервис аутентификации из конфига
func NewAuthService(cfg *config.Config, storage *Storage) *usecase.AuthService {
	return usecase.NewAuthService(
		storage.Users,
		auth.NewPasswordManager(),
		auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTTL),
	)
}

// Serve поднимает HTTP-сервер и ждет SIGINT/SIGTERM
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := OpenStorage(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer storage.Close()

	var publisher usecase.EventPublisher = usecase.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		publisher = rabbitMQ
		logger.Info("publishing task events", zap.String("queue", rabbitMQ.GetQueueName()))
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		TaskService:   usecase.NewTaskService(storage.Tasks, publisher, logger),
		AuthService:   NewAuthService(cfg, storage),
		Storage:       storage,
		Views:         renderer,
		Logger:        logger,
		SessionTTL:    cfg.JWT.AccessTTL,
		SecureCookies: cfg.HTTP.SecureCookies,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
