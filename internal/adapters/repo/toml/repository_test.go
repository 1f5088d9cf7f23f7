package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string, keep int) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(HistoryPathKey, path)
	if keep > 0 {
		config.Set(HistoryKeepKey, keep)
	}

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func sampleReport(id string, startedAt time.Time) domain.RunReport {
	return domain.RunReport{
		ID:               id,
		StartedAt:        startedAt,
		FinishedAt:       startedAt.Add(90 * time.Second),
		Status:           domain.RunStatusRenewed,
		RenewalPerformed: true,
		Accounts: []domain.AccountReport{
			{
				Account:       "jan***@example.com",
				LoginAttempts: 2,
				LoggedIn:      true,
				Resources: []domain.ResourceReport{
					{ID: "111", Outcome: domain.OutcomeRenewed},
					{ID: "222", Outcome: domain.OutcomeNotDue},
				},
			},
			{Account: "bob***@example.com", LoginAttempts: 10, Error: "login failed after 10 attempts"},
		},
		Log: []domain.LogEntry{
			{At: startedAt, Kind: domain.LogInfo, Message: "renewing account 1"},
			{At: startedAt.Add(time.Minute), Kind: domain.LogSuccess, Message: "ServerID 111 renewed"},
		},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "runs.toml"), 0)
	report := sampleReport("run-1", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Save(context.Background(), report))

	runs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, report, runs[0])
}

func TestRepositoryListsNewestFirstAndTrimsToKeep(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "runs.toml"), 3)
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		report := sampleReport(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*12*time.Hour))
		require.NoError(t, repo.Save(context.Background(), report))
	}

	runs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
	assert.Equal(t, "run-2", runs[2].ID)
}

func TestRepositorySaveReplacesRunWithSameID(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "runs.toml"), 0)
	report := sampleReport("run-1", time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(context.Background(), report))

	report.Status = domain.RunStatusError
	report.Error = "unexpected portal page"
	require.NoError(t, repo.Save(context.Background(), report))

	runs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunStatusError, runs[0].Status)
}

func TestRepositoryMissingFileListsNothing(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "runs.toml"), 0)

	runs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRepositorySaveCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "eurenew", "runs.toml")
	repo := newTestRepository(t, path, 0)

	require.NoError(t, repo.Save(context.Background(), sampleReport("run-1", time.Now().UTC())))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(historyFileMode), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.toml")
	require.NoError(t, os.WriteFile(path, []byte("runs = [\n"), 0o600))

	_, err := newTestRepository(t, path, 0).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode history file")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0o600))

	_, err := newTestRepository(t, path, 0).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported history schema version 99")
}

func TestRepositoryRejectsUnknownOutcome(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.toml")
	content := `version = 1

[[runs]]
id = "run-1"
started_at = 2026-10-17T00:00:00Z
finished_at = 2026-10-17T00:01:00Z
status = "renewed"
renewal_performed = true

[[runs.accounts]]
account = "jan***@example.com"
login_attempts = 1
logged_in = true

[[runs.accounts.resources]]
id = "111"
outcome = "exploded"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := newTestRepository(t, path, 0).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "exploded")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "runs.toml"), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, sampleReport("run-1", time.Now().UTC()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepositoryConcurrentSavesAcrossInstancesKeepEveryRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.toml")
	first := newTestRepository(t, path, 0)
	second := newTestRepository(t, path, 0)
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := range 10 {
		repo := first
		if i%2 == 1 {
			repo = second
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Save(context.Background(), sampleReport(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))))
		}()
	}
	wg.Wait()

	runs, err := first.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 10)
}
