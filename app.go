package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"github.com/kova98/rivalwatch/config"
	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/data/repos"
	"github.com/kova98/rivalwatch/monitor"
	"github.com/kova98/rivalwatch/notifiers"
	"github.com/kova98/rivalwatch/sources"
	"github.com/kova98/rivalwatch/trends"
)

// app holds the database handle and repositories shared by every command.
type app struct {
	logger        *slog.Logger
	db            *sqlx.DB
	competitors   *repos.CompetitorRepo
	configs       *repos.ConfigRepo
	updates       *repos.UpdateRepo
	trends        *repos.TrendRepo
	notifications *repos.NotificationRepo
	users         *repos.UserRepo
	closers       []func()
}

func newApp(logger *slog.Logger) (*app, error) {
	db, err := sqlx.Connect("postgres", config.Config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return &app{
		logger:        logger,
		db:            db,
		competitors:   repos.NewCompetitorRepo(db),
		configs:       repos.NewConfigRepo(db),
		updates:       repos.NewUpdateRepo(db),
		trends:        repos.NewTrendRepo(db),
		notifications: repos.NewNotificationRepo(db),
		users:         repos.NewUserRepo(db),
	}, nil
}

func (a *app) migrate() error {
	return data.RunMigrations(a.db.DB, embedMigrations)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database connection", "error", err)
	}
}

func (a *app) newMonitor() (*monitor.Monitor, error) {
	client, err := sources.NewHTTPClient(config.Config.FetchTimeout, config.Config.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	fetcher := sources.NewFetcher(client, config.Config.UserAgent, config.Config.FetchMaxBytes)
	scraper := sources.NewWebsiteScraper(a.logger, fetcher)

	dispatcher := notifiers.NewDispatcher(a.logger, a.users, a.notifications, a.alerters()...)

	return monitor.NewMonitor(a.logger, a.competitors, a.configs, a.updates, scraper, dispatcher), nil
}

func (a *app) newAnalyzer() *trends.Analyzer {
	return trends.NewAnalyzer(a.logger, a.updates, a.trends)
}

// alerters connects the optional push channels. A channel that cannot be set
// up is logged and left out.
func (a *app) alerters() []notifiers.Alerter {
	var alerters []notifiers.Alerter

	if config.Config.NATSURL != "" {
		nc, err := a.connectNATS(config.Config.NATSURL)
		if err != nil {
			a.logger.Error("nats alerts disabled", "error", err)
		} else {
			a.closers = append(a.closers, func() {
				if err := nc.Flush(); err != nil {
					a.logger.Warn("flush nats", "error", err)
				}
				nc.Close()
			})
			alerters = append(alerters, notifiers.NewEventPublisher(nc, config.Config.NATSSubject))
		}
	}

	if config.Config.TelegramEnabled() {
		bot, err := tgbotapi.NewBotAPI(config.Config.TelegramToken)
		if err != nil {
			a.logger.Error("telegram alerts disabled", "error", err)
		} else {
			a.logger.Info("telegram alerts enabled", "bot", bot.Self.UserName)
			alerters = append(alerters, notifiers.NewTelegramAlerter(bot, config.Config.TelegramChatID))
		}
	}

	return alerters
}

func (a *app) connectNATS(url string) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("rivalwatch"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			a.logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			a.logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			a.logger.Info("nats connection closed")
		}),
	}

	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return nc, nil
}

func (a *app) ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}
