package history

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/euserv-renew/internal/application"
	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRunReport(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 5, 0, 0, time.UTC)
	startedAt := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	output, err := Render([]domain.RunReport{
		{
			ID:               "8f14e45f-ceea-467f-a0e5-0a1b2c3d4e5f",
			StartedAt:        startedAt,
			FinishedAt:       startedAt.Add(95 * time.Second),
			Status:           domain.RunStatusRenewed,
			RenewalPerformed: true,
			Accounts: []domain.AccountReport{
				{
					Account:       "jan***@example.com",
					LoginAttempts: 1,
					LoggedIn:      true,
					Resources: []domain.ResourceReport{
						{ID: "111", Outcome: domain.OutcomeRenewed},
						{ID: "222", Outcome: domain.OutcomeNotDue},
						{ID: "333", Outcome: domain.OutcomeVerifyFailed, Reason: "still due after renewal"},
					},
				},
				{Account: "bob***@example.com", LoginAttempts: 10, Error: "login failed after 10 attempts"},
			},
			Log: []domain.LogEntry{{Kind: domain.LogSuccess, Message: "ServerID 111 renewed"}},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "runs: 1")
	assert.Contains(t, output, "today 12:00")
	assert.Contains(t, output, "renewed")
	assert.Contains(t, output, "1m35s, 8f14e45f")
	assert.Contains(t, output, "servers: 1 renewed, 1 not due, 1 failed")
	assert.Contains(t, output, "jan***@example.com: logged in (1 attempt)")
	assert.Contains(t, output, "bob***@example.com: login failed (10 attempts) - login failed after 10 attempts")
	assert.Contains(t, output, "server 333: verify failed (still due after renewal)")
	assert.NotContains(t, output, "ServerID 111 renewed")
}

func TestRenderRunReportWithLog(t *testing.T) {
	output, err := Render([]domain.RunReport{
		{
			ID:        "run-1",
			StartedAt: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
			Status:    domain.RunStatusError,
			Error:     "renewal aborted: panic",
			Log:       []domain.LogEntry{{Kind: domain.LogError, Message: "renewal aborted"}},
		},
	}, RenderOptions{Now: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), ShowLog: true})

	require.NoError(t, err)
	assert.Contains(t, output, "2026-10-16 00:00")
	assert.Contains(t, output, "error: renewal aborted: panic")
	assert.Contains(t, output, "⚠️ renewal aborted")
}

func TestRenderEmptyHistory(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "runs: 0")
	assert.Contains(t, output, "No renewal runs recorded yet.")
}

func TestRenderServers(t *testing.T) {
	output, err := RenderServers([]application.AccountServers{
		{
			Account: "jan***@example.com",
			Resources: []domain.Resource{
				{ID: "111", NeedsRenewal: true},
				{ID: "222", NeedsRenewal: false},
			},
		},
		{Account: "bob***@example.com", Err: errors.New("login failed after 10 attempts")},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "Account: jan***@example.com")
	assert.Contains(t, output, "server 111: due")
	assert.Contains(t, output, "server 222: not due")
	assert.Contains(t, output, "error: login failed after 10 attempts")
}
