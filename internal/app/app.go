package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/CommunityApp/internal/config"
	"github.com/GoArmGo/CommunityApp/internal/core/ports"
	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config  *config.Config
	logger  *slog.Logger
	router  http.Handler
	files   usecase.FileUseCase
	cleanup ports.ImageCleanupConsumer
	closers []func()
}

// NewApp собирает приложение. closers вызываются при завершении в обратном порядке.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	files usecase.FileUseCase,
	cleanup ports.ImageCleanupConsumer,
	closers ...func(),
) *App {
	return &App{
		Config:  cfg,
		logger:  logger,
		router:  router,
		files:   files,
		cleanup: cleanup,
		closers: closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает сервер или воркер и блокируется до SIGINT/SIGTERM
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.Shutdown()

	a.logger.Info("starting", "mode", mode)

	switch mode {
	case ModeServer:
		return runServer(ctx, a.Config, a.router, a.logger)
	case ModeWorker:
		return runWorker(ctx, a.files, a.cleanup, a.logger)
	default:
		return fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	a.logger.Info("resources released")
}
