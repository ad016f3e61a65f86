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

	"github.com/artem20051205/bady/internal/config"
	"github.com/artem20051205/bady/internal/notify"
	"github.com/artem20051205/bady/internal/store"
	"github.com/artem20051205/bady/internal/survey"
	"github.com/artem20051205/bady/internal/telegram"
	"github.com/artem20051205/bady/internal/tracking"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
	program *tracking.Program
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting bot", zap.String("http", a.cfg.HTTPAddr), zap.Int("totalDays", a.cfg.TotalDays))

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	loc, err := time.LoadLocation(a.cfg.TZ)
	if err != nil {
		a.log.Error("load timezone failed", zap.String("tz", a.cfg.TZ), zap.Error(err))
		return err
	}

	menu, weight, reminder, rollover, err := a.cfg.Triggers()
	if err != nil {
		return err
	}

	gw := notify.NewGateway(a.bot, a.log, a.cfg.ChannelID, a.cfg.ChannelURL)
	engine := survey.NewEngine(repo, gw, gw, a.log)
	a.program = tracking.NewProgram(
		repo, gw, a.log,
		tracking.NewClock(loc),
		a.cfg.TotalDays,
		tracking.Times{Menu: menu, Weight: weight, Reminder: reminder, Rollover: rollover},
		a.cfg.PollInterval,
	)
	a.router = telegram.NewRouter(a.log, repo, gw, engine, a.program)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.program.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
