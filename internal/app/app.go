package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/config"
	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
	"github.com/ChristelOko/BarometreHED-sub002/internal/energy"
	"github.com/ChristelOko/BarometreHED-sub002/internal/httpapi"
	"github.com/ChristelOko/BarometreHED-sub002/internal/notify"
	"github.com/ChristelOko/BarometreHED-sub002/internal/scheduler"
	"github.com/ChristelOko/BarometreHED-sub002/internal/store"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	surface notify.Surface
	repo    store.Repo
	httpSrv *http.Server
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	var surface notify.Surface = notify.NoopSurface{}
	if cfg.TelegramToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			return nil, err
		}
		bot.Debug = false
		surface = notify.NewTelegramSurface(bot, log)
	} else {
		log.Warn("no telegram token configured, notification display disabled")
	}

	return &App{cfg: cfg, log: log, surface: surface}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting barometre backend",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("db", a.cfg.DBPath),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	gate := domain.NewGate(a.cfg.FounderEmail)
	moderator := domain.NewModerator(a.cfg.ModerationDenylist)
	dispatcher := notify.NewDispatcher(repo, a.surface, a.log, a.cfg.HorizonDays)
	energySvc := energy.NewService()

	server := httpapi.NewServer(a.log, repo, gate, moderator, dispatcher, energySvc, a.cfg.JWTSecret)
	a.httpSrv = &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Delivery loop runs until shutdown.
	deliver := scheduler.New(repo, a.surface, a.log)
	go deliver.Run(ctx)

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = a.httpSrv.Shutdown(shCtx)
	cancel()

	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
	return nil
}
