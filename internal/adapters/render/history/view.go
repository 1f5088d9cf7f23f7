package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/application"
	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now      time.Time
	Location *time.Location
	ShowLog  bool
}

// Render draws stored run reports, newest first as given.
func Render(reports []domain.RunReport, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return renderRuns(reports, opts, s) })
}

// RenderServers draws the result of a dry listing.
func RenderServers(accounts []application.AccountServers) (string, error) {
	return run(func(s styles) string { return renderServers(accounts, s) })
}

func renderRuns(reports []domain.RunReport, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("EUserv Renewal History"),
		s.header.Render(fmt.Sprintf("runs: %d", len(reports))),
	}

	if len(reports) == 0 {
		lines = append(lines, s.empty.Render("No renewal runs recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, report := range reports {
		lines = append(lines, s.section.Render(renderRun(report, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRun(report domain.RunReport, opts RenderOptions, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.run.Render(formatStartedAt(report.StartedAt, opts)),
			" ",
			statusLabel(report.Status, s),
			" ",
			s.header.Render(fmt.Sprintf("(%s, %s)", formatDuration(report.Duration()), shortID(report.ID))),
		),
		outcomeLine(report, s),
	}

	if report.Error != "" {
		parts = append(parts, s.warning.PaddingLeft(2).Render("error: "+report.Error))
	}

	for _, account := range report.Accounts {
		parts = append(parts, s.account.Render(accountLine(account)))
		for _, resource := range account.Resources {
			parts = append(parts, s.detail.Render(resourceLine(resource)))
		}
	}

	if opts.ShowLog {
		for _, entry := range report.Log {
			parts = append(parts, s.logLine.Render(entry.Text()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderServers(accounts []application.AccountServers, s styles) string {
	lines := []string{
		s.title.Render("EUserv Servers"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(accounts))),
	}

	if len(accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, account := range accounts {
		parts := []string{s.run.Render("Account: " + account.Account)}
		switch {
		case account.Err != nil:
			parts = append(parts, s.warning.PaddingLeft(2).Render("error: "+account.Err.Error()))
		case len(account.Resources) == 0:
			parts = append(parts, s.empty.PaddingLeft(2).Render("no servers"))
		}
		for _, resource := range account.Resources {
			label := s.success.Render("not due")
			if resource.NeedsRenewal {
				label = s.warning.Render("due")
			}
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, s.account.Render("server "+string(resource.ID)+":"), " ", label))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusLabel(status domain.RunStatus, s styles) string {
	switch status {
	case domain.RunStatusRenewed:
		return s.success.Render("renewed")
	case domain.RunStatusError:
		return s.warning.Render("error")
	case domain.RunStatusIdle:
		return s.header.Render("idle")
	default:
		return s.header.Render(string(status))
	}
}

// outcomeLine draws one bar cell per server: filled for renewed, red for
// failed, dim for everything else.
func outcomeLine(report domain.RunReport, s styles) string {
	var bar strings.Builder
	total := 0
	for _, account := range report.Accounts {
		for _, resource := range account.Resources {
			total++
			switch resource.Outcome {
			case domain.OutcomeRenewed:
				bar.WriteString(s.barFill.Render("="))
			case domain.OutcomeFailed, domain.OutcomeVerifyFailed:
				bar.WriteString(s.barFail.Render("x"))
			default:
				bar.WriteString(s.barEmpty.Render("-"))
			}
		}
	}

	summary := fmt.Sprintf("servers: %d renewed, %d not due, %d failed",
		report.Count(domain.OutcomeRenewed),
		report.Count(domain.OutcomeNotDue),
		report.Count(domain.OutcomeFailed)+report.Count(domain.OutcomeVerifyFailed),
	)
	if total == 0 {
		return s.account.Render(summary)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.account.Render(summary),
		" ",
		s.barBracket.Render("["),
		bar.String(),
		s.barBracket.Render("]"),
	)
}

func accountLine(account domain.AccountReport) string {
	line := fmt.Sprintf("%s: ", account.Account)
	switch {
	case account.LoggedIn:
		line += fmt.Sprintf("logged in (%d %s)", account.LoginAttempts, plural(account.LoginAttempts, "attempt"))
	default:
		line += fmt.Sprintf("login failed (%d %s)", account.LoginAttempts, plural(account.LoginAttempts, "attempt"))
	}
	if account.Error != "" {
		line += " - " + account.Error
	}
	return line
}

func resourceLine(resource domain.ResourceReport) string {
	line := fmt.Sprintf("server %s: %s", resource.ID, strings.ReplaceAll(string(resource.Outcome), "_", " "))
	if resource.Reason != "" {
		line += " (" + resource.Reason + ")"
	}
	return line
}

func formatStartedAt(startedAt time.Time, opts RenderOptions) string {
	if startedAt.IsZero() {
		return "unknown start"
	}
	if opts.Location != nil {
		startedAt = startedAt.In(opts.Location)
	}

	if !opts.Now.IsZero() {
		now := opts.Now
		if opts.Location != nil {
			now = now.In(opts.Location)
		}
		yearA, monthA, dayA := now.Date()
		yearB, monthB, dayB := startedAt.Date()
		if yearA == yearB && monthA == monthB && dayA == dayB {
			return "today " + startedAt.Format("15:04")
		}
	}

	return startedAt.Format("2006-01-02 15:04")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "no id"
	}
	return id
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
