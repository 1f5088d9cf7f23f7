package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	portmocks "github.com/bnema/euserv-renew/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://support.euserv.com", cfg.Portal.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Portal.RequestTimeout)
	assert.Equal(t, 10, cfg.Login.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Login.RetryDelay)
	assert.Equal(t, 15*time.Second, cfg.Renewal.PinInitialWait)
	assert.Equal(t, 3, cfg.Renewal.PinAttempts)
	assert.Equal(t, 5*time.Second, cfg.Renewal.PinRetryDelay)
	assert.Equal(t, 15*time.Second, cfg.Orchestrator.SettleDelay)
	assert.Equal(t, 5*time.Second, cfg.Orchestrator.AccountCooldown)
	assert.Equal(t, "imap.gmail.com", cfg.Mail.Server)
	assert.Equal(t, 993, cfg.Mail.Port)
	assert.Equal(t, "INBOX", cfg.Mail.Folder)
	assert.Equal(t, "0 0,12 * * *", cfg.Schedule.Cron)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Empty(t, cfg.File)

	_, err = cfg.Accounts()
	require.ErrorIs(t, err, domain.ErrNoAccounts)
}

func TestLoadReadsXDGConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "eurenew", "config.toml"), `
[accounts]
usernames = ["jane@example.com", "bob@example.com"]
passwords = ["pw1", "pw2"]

[login]
max_attempts = 4
retry_delay = "500ms"

[captcha]
provider = "Gemini"
gemini_api_key = "key"

[notify.telegram]
bot_token = "123:abc"
chat_id = "-100"
`)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	accounts, err := cfg.Accounts()
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{
		{Username: "jane@example.com", Password: "pw1"},
		{Username: "bob@example.com", Password: "pw2"},
	}, accounts)
	assert.Equal(t, 4, cfg.Login.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Login.RetryDelay)
	assert.Equal(t, CaptchaProviderGemini, cfg.Captcha.Provider)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.NotEmpty(t, cfg.File)
	require.NoError(t, cfg.ValidateLogin())
}

func TestLoadEnvOverridesAndWhitespaceSeparatedAccounts(t *testing.T) {
	isolate(t)
	t.Setenv("EURENEW_ACCOUNTS_USERNAMES", "jane@example.com bob@example.com")
	t.Setenv("EURENEW_ACCOUNTS_PASSWORDS", "pw1 pw2")
	t.Setenv("EURENEW_MAIL_USERNAME", "jane@gmail.com")
	t.Setenv("EURENEW_PIN_ATTEMPTS", "5")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	accounts, err := cfg.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, "jane@gmail.com", cfg.Mail.Username)
	assert.Equal(t, 5, cfg.Renewal.PinAttempts)
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "EURENEW_MAIL_USERNAME=from-dotenv\nEURENEW_MAIL_FOLDER=Renewals\n")
	t.Setenv("EURENEW_MAIL_USERNAME", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("EURENEW_MAIL_FOLDER") })

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Mail.Username)
	assert.Equal(t, "Renewals", cfg.Mail.Folder)
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestAccountsMismatchIsConfigError(t *testing.T) {
	cfg := &Config{Usernames: []string{"a@example.com", "b@example.com"}, Passwords: []string{"pw"}}

	_, err := cfg.Accounts()
	require.ErrorIs(t, err, domain.ErrAccountMismatch)
}

func TestResolveSecretsReplacesReferences(t *testing.T) {
	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, "eurenew/mail").Return("app-password", nil).Once()
	store.EXPECT().Get(mock.Anything, "eurenew/jane").Return("hunter2", nil).Once()

	cfg := &Config{
		Usernames: []string{"jane@example.com", "bob@example.com"},
		Passwords: []string{"secret:eurenew/jane", "plain"},
		Mail:      Mail{Password: "secret:eurenew/mail"},
		Telegram:  Telegram{BotToken: "123:abc"},
	}

	require.NoError(t, cfg.ResolveSecrets(context.Background(), store))
	assert.Equal(t, []string{"hunter2", "plain"}, cfg.Passwords)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
}

func TestResolveSecretsReportsWhichKeyFailed(t *testing.T) {
	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, "eurenew/mail").Return("", domain.ErrSecretNotFound).Once()

	cfg := &Config{Mail: Mail{Password: "secret:eurenew/mail"}}

	err := cfg.ResolveSecrets(context.Background(), store)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "mail.password")
}

func TestValidateRun(t *testing.T) {
	base := func() *Config {
		return &Config{
			Usernames: []string{"jane@example.com"},
			Passwords: []string{"pw"},
			Mail:      Mail{Username: "jane@gmail.com", Password: "app"},
			Captcha:   Captcha{Provider: CaptchaProviderHTTP, Endpoint: "http://127.0.0.1:9898/ocr/b64/text"},
		}
	}

	require.NoError(t, base().ValidateRun())

	noMail := base()
	noMail.Mail.Password = ""
	require.ErrorContains(t, noMail.ValidateRun(), "mail.username and mail.password")

	noEndpoint := base()
	noEndpoint.Captcha.Endpoint = ""
	require.ErrorContains(t, noEndpoint.ValidateRun(), "captcha.endpoint")

	unknown := base()
	unknown.Captcha.Provider = "tesseract"
	require.ErrorContains(t, unknown.ValidateRun(), "unknown captcha.provider")
}
