package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/adapters/captcha"
	"github.com/bnema/euserv-renew/internal/adapters/mail"
	metricsadapter "github.com/bnema/euserv-renew/internal/adapters/metrics"
	"github.com/bnema/euserv-renew/internal/adapters/notify"
	"github.com/bnema/euserv-renew/internal/adapters/portal"
	historyadapter "github.com/bnema/euserv-renew/internal/adapters/render/history"
	tomlrepo "github.com/bnema/euserv-renew/internal/adapters/repo/toml"
	chainstore "github.com/bnema/euserv-renew/internal/adapters/secrets/chain"
	"github.com/bnema/euserv-renew/internal/application"
	"github.com/bnema/euserv-renew/internal/config"
	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/logging"
	"github.com/bnema/euserv-renew/internal/ports"
	"go.uber.org/zap"
)

// wireMode selects how much of the graph a command needs.
type wireMode int

const (
	wireHistory wireMode = iota
	wireSurvey
	wireRenewal
)

type app struct {
	cfg             *config.Config
	logger          *zap.Logger
	closeLog        func()
	history         ports.RunHistoryRepository
	orchestrator    *application.Orchestrator
	metrics         *metricsadapter.Prometheus
	historyRenderer func([]domain.RunReport, historyadapter.RenderOptions) (string, error)
	serversRenderer func([]application.AccountServers) (string, error)
	now             func() time.Time
}

func (a *app) Close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

func wireApp(ctx context.Context, opts *rootOptions, stderr io.Writer, mode wireMode) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.configFile, EnvFile: opts.envFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		Console:   stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	a := &app{
		cfg:             cfg,
		logger:          logger,
		closeLog:        closeLog,
		historyRenderer: historyadapter.Render,
		serversRenderer: historyadapter.RenderServers,
		now:             time.Now,
	}
	if cfg.File != "" {
		logger.Debug("config loaded", zap.String("file", cfg.File))
	}

	repo, err := tomlrepo.NewRepository(cfg.Viper)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("wire run history: %w", err)
	}
	a.history = repo

	if mode == wireHistory {
		return a, nil
	}

	if err := a.wireOrchestrator(ctx, mode); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wireOrchestrator(ctx context.Context, mode wireMode) error {
	cfg := a.cfg

	secretsDir, err := config.SecretsDir()
	if err != nil {
		return fmt.Errorf("resolve secrets directory: %w", err)
	}
	secretStore, err := chainstore.NewPassFirstWithFileFallback(secretsDir)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}
	if err := cfg.ResolveSecrets(ctx, secretStore); err != nil {
		return err
	}

	validate := cfg.ValidateLogin
	if mode == wireRenewal {
		validate = cfg.ValidateRun
	}
	if err := validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	accounts, err := cfg.Accounts()
	if err != nil {
		return err
	}

	solver, err := newCaptchaSolver(ctx, cfg.Captcha)
	if err != nil {
		return err
	}

	var pins ports.PinFetcher
	if mode == wireRenewal {
		fetcher, err := mail.NewIMAPFetcher(mail.Config{
			Server:   cfg.Mail.Server,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			Folder:   cfg.Mail.Folder,
		})
		if err != nil {
			return fmt.Errorf("wire mail fetcher: %w", err)
		}
		pins = fetcher
	}

	notifiers, err := newNotifiers(cfg)
	if err != nil {
		return err
	}
	dispatcher := application.NewDispatcher(a.logger, notifiers...)
	if len(dispatcher.Channels()) == 0 && mode == wireRenewal {
		a.logger.Warn("no notification channel configured, results will only be logged")
	}

	a.metrics = metricsadapter.NewPrometheus()
	clock := ports.SystemClock{}
	client := &portal.Client{
		BaseURL:        cfg.Portal.BaseURL,
		UserAgent:      cfg.Portal.UserAgent,
		RequestTimeout: cfg.Portal.RequestTimeout,
	}

	a.orchestrator = application.NewOrchestrator(application.OrchestratorDeps{
		Accounts:   accounts,
		Login:      application.NewLoginMachine(client, solver, clock, a.metrics, cfg.Login),
		Renewal:    application.NewRenewalMachine(pins, clock, cfg.Renewal),
		Dispatcher: dispatcher,
		History:    a.history,
		Metrics:    a.metrics,
		Clock:      clock,
		Logger:     a.logger,
	}, cfg.Orchestrator)

	return nil
}

func newCaptchaSolver(ctx context.Context, cfg config.Captcha) (ports.CaptchaSolver, error) {
	switch cfg.Provider {
	case config.CaptchaProviderGemini:
		solver, err := captcha.NewGeminiSolver(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("wire gemini captcha solver: %w", err)
		}
		return solver, nil
	default:
		return &captcha.HTTPSolver{Endpoint: cfg.Endpoint}, nil
	}
}

func newNotifiers(cfg *config.Config) ([]ports.Notifier, error) {
	var notifiers []ports.Notifier

	if strings.TrimSpace(cfg.Telegram.BotToken) != "" && strings.TrimSpace(cfg.Telegram.ChatID) != "" {
		notifiers = append(notifiers, &notify.Telegram{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
		})
	}

	wxpusher, err := notify.NewWxPusher(cfg.WxPusher.AppToken, cfg.WxPusher.TopicID)
	if err != nil {
		return nil, fmt.Errorf("wire wxpusher: %w", err)
	}
	if wxpusher != nil {
		notifiers = append(notifiers, wxpusher)
	}

	return notifiers, nil
}
