package main

import (
	"net/http"
	"os"

	"event-signup/auth"
	"event-signup/data/repository"
	"event-signup/domain"

	"github.com/rs/zerolog"
)

type application struct {
	cfg      config
	log      zerolog.Logger
	repo     repository.Repo
	accounts *domain.AccountService
	events   *domain.EventService
	sessions *auth.Sessions
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg)

	repo, err := openRepo(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open storage backend")
	}

	app := &application{
		cfg:      cfg,
		log:      logger,
		repo:     repo,
		accounts: domain.NewAccountService(repo),
		events:   domain.NewEventService(repo),
		sessions: auth.NewSessions(repo, []byte(cfg.SessionSecret), cfg.SessionTTL),
	}

	logger.Info().Str("addr", cfg.Addr).Str("backend", cfg.Backend).Msg("server listening")
	if err := http.ListenAndServe(cfg.Addr, app.routes()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
