package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/varsilias/crystal/internal/chat"
	"github.com/varsilias/crystal/internal/config"
	"github.com/varsilias/crystal/internal/llm"
	"github.com/varsilias/crystal/internal/logging"
	"github.com/varsilias/crystal/internal/news"
	"github.com/varsilias/crystal/internal/search"
	"github.com/varsilias/crystal/internal/session"
	"github.com/varsilias/crystal/internal/weather"
)

// app is the dependency graph shared by serve and chat.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	store *session.MemoryStore
	chat  *chat.Controller
}

func newApp(v *viper.Viper, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel, cfg.LogJSON, logOut)

	searchClient := search.NewClient(cfg.SearchBaseURL, cfg.Secrets.GoogleSearchAPIKey, cfg.Secrets.GoogleCSEID, cfg.HTTPTimeout, log)
	store := session.NewMemoryStore()
	ctrl := chat.NewController(chat.Deps{
		Log:      log,
		Store:    store,
		Engine:   llm.NewClient(cfg.LLMBaseURL, cfg.Secrets.GeminiAPIKey, cfg.Model, cfg.HTTPTimeout, log),
		Weather:  weather.NewClient(cfg.WeatherBaseURL, cfg.Secrets.OpenWeatherAPIKey, cfg.HTTPTimeout, log),
		Search:   searchClient,
		News:     news.NewSummarizer(searchClient, log),
		Location: cfg.Location,
	})

	return &app{cfg: cfg, log: log, store: store, chat: ctrl}, nil
}
