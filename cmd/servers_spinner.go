package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/euserv-renew/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	surveyOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	surveyFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type surveyAccountStartedMsg struct {
	index   int
	total   int
	account string
}

type surveyAccountDoneMsg struct {
	result application.AccountServers
}

type surveyDoneMsg struct {
	err error
}

// surveyProgressModel animates while one account is being logged into and
// prints a line for every account already listed.
type surveyProgressModel struct {
	spinner spinner.Model
	label   string
	survey  tea.Cmd
	listed  int
	err     error
	done    bool
}

func newSurveyProgressModel(survey tea.Cmd) surveyProgressModel {
	return surveyProgressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
		),
		label:  "Connecting to the customer portal...",
		survey: survey,
	}
}

func (m surveyProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.survey)
}

func (m surveyProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case surveyAccountStartedMsg:
		m.label = fmt.Sprintf("Logging in to %s (%d/%d)...", msg.account, msg.index, msg.total)
		return m, nil
	case surveyAccountDoneMsg:
		m.listed++
		return m, tea.Println(surveyResultLine(msg.result))
	case surveyDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m surveyProgressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func surveyResultLine(result application.AccountServers) string {
	if result.Err != nil {
		return surveyFailStyle.Render("✗") + fmt.Sprintf(" %s: %v", result.Account, result.Err)
	}

	servers := "servers"
	if len(result.Resources) == 1 {
		servers = "server"
	}
	return surveyOKStyle.Render("✓") + fmt.Sprintf(" %s: %d %s, %d due", result.Account, len(result.Resources), servers, result.Due())
}

// runSurveySpinner drives survey behind a progress display on output. Login
// can take a while when captchas have to be retried, so each account is
// reported as soon as it is listed.
func runSurveySpinner(ctx context.Context, output io.Writer, survey func(context.Context, application.SurveyObserver) error) error {
	var p *tea.Program
	observer := application.SurveyObserver{
		AccountStarted: func(index, total int, account string) {
			p.Send(surveyAccountStartedMsg{index: index, total: total, account: account})
		},
		AccountDone: func(_, _ int, result application.AccountServers) {
			p.Send(surveyAccountDoneMsg{result: result})
		},
	}
	surveyCmd := func() tea.Msg {
		return surveyDoneMsg{err: survey(ctx, observer)}
	}

	p = tea.NewProgram(
		newSurveyProgressModel(surveyCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(surveyProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}
	return result.err
}
