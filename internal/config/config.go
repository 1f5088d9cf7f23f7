package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/application"
	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix    = "EURENEW"
	SecretPrefix = "secret:"

	appDir     = "eurenew"
	configName = "config"
	configType = "toml"

	CaptchaProviderHTTP   = "http"
	CaptchaProviderGemini = "gemini"
)

type Portal struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

type Mail struct {
	Server   string
	Port     int
	Username string
	Password string
	Folder   string
}

type Captcha struct {
	Provider     string
	Endpoint     string
	GeminiAPIKey string
	GeminiModel  string
}

type Telegram struct {
	BotToken string
	ChatID   string
}

type WxPusher struct {
	AppToken string
	TopicID  string
}

type Schedule struct {
	Cron     string
	Timezone string
}

type Log struct {
	Level     string
	File      string
	MaxSizeMB int
}

type Config struct {
	Usernames []string
	Passwords []string

	Portal       Portal
	Login        application.LoginPolicy
	Renewal      application.RenewalPolicy
	Orchestrator application.OrchestratorPolicy
	Mail         Mail
	Captcha      Captcha
	Telegram     Telegram
	WxPusher     WxPusher
	Schedule     Schedule
	Log          Log
	MetricsAddr  string

	// Viper is kept for adapters that read their own keys (history store).
	Viper *viper.Viper
	// File is the config file actually read, empty when none was found.
	File string
}

type LoadOptions struct {
	// ConfigFile overrides the config search path and must exist.
	ConfigFile string
	// EnvFile is loaded when present; variables already set win.
	EnvFile string
}

func Load(opts LoadOptions) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Usernames: v.GetStringSlice("accounts.usernames"),
		Passwords: v.GetStringSlice("accounts.passwords"),
		Portal: Portal{
			BaseURL:        v.GetString("portal.base_url"),
			UserAgent:      v.GetString("portal.user_agent"),
			RequestTimeout: v.GetDuration("portal.request_timeout"),
		},
		Login: application.LoginPolicy{
			MaxAttempts: v.GetInt("login.max_attempts"),
			RetryDelay:  v.GetDuration("login.retry_delay"),
			PageDelay:   v.GetDuration("login.page_delay"),
		},
		Renewal: application.RenewalPolicy{
			PinInitialWait: v.GetDuration("pin.initial_wait"),
			PinAttempts:    v.GetInt("pin.attempts"),
			PinRetryDelay:  v.GetDuration("pin.retry_delay"),
		},
		Orchestrator: application.OrchestratorPolicy{
			SettleDelay:     v.GetDuration("check.settle_delay"),
			AccountCooldown: v.GetDuration("account.cooldown"),
		},
		Mail: Mail{
			Server:   v.GetString("mail.server"),
			Port:     v.GetInt("mail.port"),
			Username: v.GetString("mail.username"),
			Password: v.GetString("mail.password"),
			Folder:   v.GetString("mail.folder"),
		},
		Captcha: Captcha{
			Provider:     strings.ToLower(strings.TrimSpace(v.GetString("captcha.provider"))),
			Endpoint:     v.GetString("captcha.endpoint"),
			GeminiAPIKey: v.GetString("captcha.gemini_api_key"),
			GeminiModel:  v.GetString("captcha.gemini_model"),
		},
		Telegram: Telegram{
			BotToken: v.GetString("notify.telegram.bot_token"),
			ChatID:   v.GetString("notify.telegram.chat_id"),
		},
		WxPusher: WxPusher{
			AppToken: v.GetString("notify.wxpusher.app_token"),
			TopicID:  v.GetString("notify.wxpusher.topic_id"),
		},
		Schedule: Schedule{
			Cron:     v.GetString("schedule.cron"),
			Timezone: v.GetString("schedule.timezone"),
		},
		Log: Log{
			Level:     v.GetString("log.level"),
			File:      v.GetString("log.file"),
			MaxSizeMB: v.GetInt("log.max_size_mb"),
		},
		MetricsAddr: v.GetString("metrics.addr"),
		Viper:       v,
		File:        v.ConfigFileUsed(),
	}

	return cfg, nil
}

// Accounts pairs usernames with passwords positionally.
func (c *Config) Accounts() ([]domain.Account, error) {
	return domain.PairAccounts(c.Usernames, c.Passwords)
}

// ResolveSecrets replaces every "secret:<key>" credential with the value
// held by store.
func (c *Config) ResolveSecrets(ctx context.Context, store ports.SecretStore) error {
	targets := []struct {
		name  string
		value *string
	}{
		{"mail.password", &c.Mail.Password},
		{"captcha.gemini_api_key", &c.Captcha.GeminiAPIKey},
		{"notify.telegram.bot_token", &c.Telegram.BotToken},
		{"notify.wxpusher.app_token", &c.WxPusher.AppToken},
	}
	for i := range c.Passwords {
		targets = append(targets, struct {
			name  string
			value *string
		}{fmt.Sprintf("accounts.passwords[%d]", i), &c.Passwords[i]})
	}

	for _, target := range targets {
		key, ok := strings.CutPrefix(*target.value, SecretPrefix)
		if !ok {
			continue
		}
		if store == nil {
			return fmt.Errorf("resolve %s: no secret store available", target.name)
		}
		resolved, err := store.Get(ctx, strings.TrimSpace(key))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", target.name, err)
		}
		*target.value = resolved
	}

	return nil
}

// ValidateLogin checks what a portal login needs.
func (c *Config) ValidateLogin() error {
	if _, err := c.Accounts(); err != nil {
		return err
	}

	switch c.Captcha.Provider {
	case CaptchaProviderHTTP:
		if strings.TrimSpace(c.Captcha.Endpoint) == "" {
			return errors.New("captcha.endpoint is required for the http captcha provider")
		}
	case CaptchaProviderGemini:
		if strings.TrimSpace(c.Captcha.GeminiAPIKey) == "" {
			return errors.New("captcha.gemini_api_key is required for the gemini captcha provider")
		}
	default:
		return fmt.Errorf("unknown captcha.provider %q (want %s or %s)", c.Captcha.Provider, CaptchaProviderHTTP, CaptchaProviderGemini)
	}

	return nil
}

// ValidateRun checks what a full renewal run needs.
func (c *Config) ValidateRun() error {
	if err := c.ValidateLogin(); err != nil {
		return err
	}
	if c.Mail.Username == "" || c.Mail.Password == "" {
		return errors.New("mail.username and mail.password are required to receive renewal PINs")
	}
	return nil
}

// SecretsDir is the file-store fallback root for secret references.
func SecretsDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "secrets"), nil
}

func setDefaults(v *viper.Viper) {
	policyLogin := application.DefaultLoginPolicy()
	policyRenewal := application.DefaultRenewalPolicy()
	policyRun := application.DefaultOrchestratorPolicy()

	v.SetDefault("portal.base_url", "https://support.euserv.com")
	v.SetDefault("portal.request_timeout", 30*time.Second)
	v.SetDefault("login.max_attempts", policyLogin.MaxAttempts)
	v.SetDefault("login.retry_delay", policyLogin.RetryDelay)
	v.SetDefault("login.page_delay", policyLogin.PageDelay)
	v.SetDefault("pin.initial_wait", policyRenewal.PinInitialWait)
	v.SetDefault("pin.attempts", policyRenewal.PinAttempts)
	v.SetDefault("pin.retry_delay", policyRenewal.PinRetryDelay)
	v.SetDefault("check.settle_delay", policyRun.SettleDelay)
	v.SetDefault("account.cooldown", policyRun.AccountCooldown)
	v.SetDefault("mail.server", "imap.gmail.com")
	v.SetDefault("mail.port", 993)
	v.SetDefault("mail.folder", "INBOX")
	v.SetDefault("captcha.provider", CaptchaProviderHTTP)
	v.SetDefault("captcha.gemini_model", "gemini-2.5-flash")
	v.SetDefault("schedule.cron", "0 0,12 * * *")
	v.SetDefault("schedule.timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)

	// Registering the keys lets AutomaticEnv serve keys that have no
	// default and no config file entry.
	for _, key := range []string{
		"accounts.usernames", "accounts.passwords", "portal.user_agent",
		"mail.username", "mail.password", "captcha.endpoint", "captcha.gemini_api_key",
		"notify.telegram.bot_token", "notify.telegram.chat_id",
		"notify.wxpusher.app_token", "notify.wxpusher.topic_id",
		"history.path", "history.keep", "log.file", "metrics.addr",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func searchPaths() []string {
	var dirs []string
	if dir, err := configDir(); err == nil {
		dirs = append(dirs, dir)
	}
	return append(dirs, ".")
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}
