package app

import (
	"log/slog"
	"os"

	"github.com/momentum-hq/momentum-api/internal/auth"
	"github.com/momentum-hq/momentum-api/internal/config"
	"github.com/momentum-hq/momentum-api/internal/delivery/http/handlers"
	"github.com/momentum-hq/momentum-api/internal/delivery/http/server"
	"github.com/momentum-hq/momentum-api/internal/llm"
	"github.com/momentum-hq/momentum-api/internal/repository"
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
	"github.com/momentum-hq/momentum-api/internal/service"
	"github.com/momentum-hq/momentum-api/internal/slack"
)

type App struct {
	Server *server.Server
}

func NewApp(cfg *config.Config) *App {
	log := newLogger(cfg.App.LogLevel)
	slog.SetDefault(log)

	cs := contentstack.New(cfg.Contentstack)
	repo := repository.New(cs)

	generator := llm.New(cfg.OpenAI)
	svc := service.New(log, repo.Blocker, repo.Member, repo.Team, repo.Report, generator)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	google := auth.NewGoogleAuthenticator(cfg.Auth)
	slackSvc := slack.New(log, svc, cfg.Slack, cfg.App.FrontendURL)

	h := handlers.New(log, svc, tokens, google, slackSvc, cfg.App.FrontendURL)
	router := h.Router()

	addr := ":" + cfg.App.Port
	httpServer := server.New(addr, router)

	return &App{
		Server: httpServer,
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
