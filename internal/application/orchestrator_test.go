package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"github.com/bnema/euserv-renew/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	accountA = domain.Account{Username: "alice@example.com", Password: "a"}
	accountB = domain.Account{Username: "bob@example.com", Password: "b"}
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) Sent() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.sent...)
}

type harness struct {
	portal   *mocks.MockPortal
	solver   *mocks.MockCaptchaSolver
	pins     *mocks.MockPinFetcher
	history  *mocks.MockRunHistoryRepository
	notifier *recordingNotifier
	clock    *fakeClock
	metrics  *recordingMetrics
	saved    []domain.RunReport
}

func newHarness(t *testing.T, accounts ...domain.Account) (*harness, *Orchestrator) {
	t.Helper()

	h := &harness{
		portal:   mocks.NewMockPortal(t),
		solver:   mocks.NewMockCaptchaSolver(t),
		pins:     mocks.NewMockPinFetcher(t),
		history:  mocks.NewMockRunHistoryRepository(t),
		notifier: &recordingNotifier{},
		clock:    newFakeClock(),
		metrics:  &recordingMetrics{},
	}
	h.history.EXPECT().Save(mockAnyContext(), mockAnything()).
		RunAndReturn(func(_ context.Context, report domain.RunReport) error {
			h.saved = append(h.saved, report)
			return nil
		}).Maybe()

	logger := zaptest.NewLogger(t)
	loginPolicy := LoginPolicy{MaxAttempts: 2, RetryDelay: 2 * time.Second, PageDelay: time.Second}

	orchestrator := NewOrchestrator(OrchestratorDeps{
		Accounts:   accounts,
		Login:      NewLoginMachine(h.portal, h.solver, h.clock, h.metrics, loginPolicy),
		Renewal:    NewRenewalMachine(h.pins, h.clock, testRenewalPolicy()),
		Dispatcher: NewDispatcher(logger, h.notifier),
		History:    h.history,
		Metrics:    h.metrics,
		Clock:      h.clock,
		Logger:     logger,
	}, OrchestratorPolicy{SettleDelay: 15 * time.Second, AccountCooldown: 5 * time.Second})

	return h, orchestrator
}

// loggedIn queues a session that authenticates on the first try and then
// answers the two listings (initial and verification) with before and after.
func (h *harness) loggedIn(t *testing.T, before, after []domain.Resource) *mocks.MockPortalSession {
	t.Helper()

	session := mocks.NewMockPortalSession(t)
	h.portal.EXPECT().NewSession().Return(session, nil).Once()
	expectLoginPage(session)
	session.EXPECT().SubmitCredentials(mockAnyContext(), mockAnything()).Return(domain.PageAuthenticated, nil).Once()
	session.EXPECT().ListResources(mockAnyContext()).Return(before, nil).Once()
	if after != nil {
		session.EXPECT().ListResources(mockAnyContext()).Return(after, nil).Once()
	}
	session.EXPECT().Close().Return().Once()
	return session
}

func expectRenewal(h *harness, session *mocks.MockPortalSession, id domain.ResourceID) {
	session.EXPECT().ChooseOrder(mockAnyContext(), id).Return(nil).Once()
	session.EXPECT().RequestPIN(mockAnyContext(), id).Return(nil).Once()
	h.pins.EXPECT().FetchLatestPIN(mockAnyContext()).Return("123456", true, nil).Once()
	session.EXPECT().ExchangePIN(mockAnyContext(), id, domain.PIN("123456")).Return(domain.RenewalToken("tok"), nil).Once()
	session.EXPECT().ExtendContract(mockAnyContext(), id, domain.RenewalToken("tok")).Return(nil).Once()
}

func outcomes(account domain.AccountReport) map[domain.ResourceID]domain.ResourceOutcome {
	out := map[domain.ResourceID]domain.ResourceOutcome{}
	for _, resource := range account.Resources {
		out[resource.ID] = resource.Outcome
	}
	return out
}

func TestRunRenewsDueServerAndNotifiesOnce(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	session := h.loggedIn(t,
		[]domain.Resource{{ID: "111", NeedsRenewal: false}, {ID: "222", NeedsRenewal: true}},
		[]domain.Resource{{ID: "111", NeedsRenewal: false}, {ID: "222", NeedsRenewal: false}},
	)
	expectRenewal(h, session, "222")

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusRenewed, report.Status)
	assert.True(t, report.RenewalPerformed)
	require.Len(t, report.Accounts, 1)
	assert.True(t, report.Accounts[0].LoggedIn)
	assert.Equal(t, map[domain.ResourceID]domain.ResourceOutcome{
		"111": domain.OutcomeNotDue,
		"222": domain.OutcomeRenewed,
	}, outcomes(report.Accounts[0]))

	sent := h.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.NotificationRenewed, sent[0].Kind)
	assert.Contains(t, sent[0].Summary, "222")
	assert.Contains(t, sent[0].Log, "ServerID 222 renewed successfully")

	require.Len(t, h.saved, 1)
	assert.Equal(t, report.ID, h.saved[0].ID)
	assert.Equal(t, []domain.RunStatus{domain.RunStatusRenewed}, h.metrics.runs)
	assert.Equal(t, []domain.ResourceOutcome{domain.OutcomeNotDue, domain.OutcomeRenewed}, h.metrics.outcomes)
	assert.Contains(t, h.clock.Sleeps(), 15*time.Second)
}

func TestRunWithNothingDueSendsNoNotification(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	notDue := []domain.Resource{{ID: "111", NeedsRenewal: false}}
	h.loggedIn(t, notDue, notDue)

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusIdle, report.Status)
	assert.False(t, report.RenewalPerformed)
	assert.Empty(t, h.notifier.Sent())

	text := logText(report)
	assert.Contains(t, text, "ServerID 111 does not need renewal")
	assert.Contains(t, text, "no renewal performed, skipping notification")
	assert.Len(t, h.saved, 1)
}

func TestRunContinuesWithNextAccountAfterLoginFailure(t *testing.T) {
	h, orchestrator := newHarness(t, accountA, accountB)

	rejected := mocks.NewMockPortalSession(t)
	h.portal.EXPECT().NewSession().Return(rejected, nil).Times(2)
	expectLoginPage(rejected)
	rejected.EXPECT().SubmitCredentials(mockAnyContext(), accountA).Return(domain.PageRejected, nil).Times(2)
	rejected.EXPECT().Close().Return().Times(2)

	h.loggedIn(t, []domain.Resource{{ID: "333", NeedsRenewal: false}}, []domain.Resource{{ID: "333", NeedsRenewal: false}})

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts, 2)
	assert.False(t, report.Accounts[0].LoggedIn)
	assert.Equal(t, 2, report.Accounts[0].LoginAttempts)
	assert.Contains(t, report.Accounts[0].Error, domain.ErrAuth.Error())
	assert.True(t, report.Accounts[1].LoggedIn)

	assert.Equal(t, domain.RunStatusIdle, report.Status)
	assert.Empty(t, h.notifier.Sent())
	assert.Contains(t, logText(report), "account 1 login failed, check credentials")
	assert.Contains(t, h.clock.Sleeps(), 5*time.Second)
	assert.Equal(t, []bool{false, true}, h.metrics.logins)
}

func TestRunReclassifiesServerStillDueAfterRenewal(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	due := []domain.Resource{{ID: "222", NeedsRenewal: true}}
	session := h.loggedIn(t, due, due)
	expectRenewal(h, session, "222")

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts[0].Resources, 1)
	resource := report.Accounts[0].Resources[0]
	assert.Equal(t, domain.OutcomeVerifyFailed, resource.Outcome)
	assert.Equal(t, "still due after renewal", resource.Reason)
	assert.Contains(t, logText(report), "ServerID 222 renewal failed!")

	// The portal accepted the extension, so the run still counts as a renewal,
	// but the notification must not claim the server was renewed.
	assert.Equal(t, domain.RunStatusRenewed, report.Status)
	sent := h.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "EUserv renewal not confirmed", sent[0].Title)
	assert.Equal(t, "Still due after renewal: 222", sent[0].Summary)
	assert.NotContains(t, sent[0].Summary, "Renewed: 222")
}

func TestRunReclassifiesServerThatBecameDueDuringRun(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	h.loggedIn(t,
		[]domain.Resource{{ID: "111", NeedsRenewal: false}},
		[]domain.Resource{{ID: "111", NeedsRenewal: true}},
	)

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts[0].Resources, 1)
	resource := report.Accounts[0].Resources[0]
	assert.Equal(t, domain.OutcomeVerifyFailed, resource.Outcome)
	assert.Equal(t, "due at verification", resource.Reason)
	assert.Contains(t, logText(report), "ServerID 111 renewal failed!")
	assert.Equal(t, domain.RunStatusIdle, report.Status)
	assert.Empty(t, h.notifier.Sent())
}

func TestRunNotifiesOnceForRenewedAccountWhenNextLoginFails(t *testing.T) {
	h, orchestrator := newHarness(t, accountA, accountB)

	session := h.loggedIn(t,
		[]domain.Resource{{ID: "222", NeedsRenewal: true}},
		[]domain.Resource{{ID: "222", NeedsRenewal: false}},
	)
	expectRenewal(h, session, "222")

	rejected := mocks.NewMockPortalSession(t)
	h.portal.EXPECT().NewSession().Return(rejected, nil).Times(2)
	expectLoginPage(rejected)
	rejected.EXPECT().SubmitCredentials(mockAnyContext(), accountB).Return(domain.PageRejected, nil).Times(2)
	rejected.EXPECT().Close().Return().Times(2)

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts, 2)
	assert.Equal(t, domain.OutcomeRenewed, report.Accounts[0].Resources[0].Outcome)
	assert.False(t, report.Accounts[1].LoggedIn)
	assert.Equal(t, 2, report.Accounts[1].LoginAttempts)
	assert.Equal(t, domain.RunStatusRenewed, report.Status)

	sent := h.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.NotificationRenewed, sent[0].Kind)
	assert.Equal(t, "Renewed: 222", sent[0].Summary)
	assert.Contains(t, sent[0].Log, "account 2 login failed, check credentials")
}

func TestRunRecordsPINTimeoutAndContinues(t *testing.T) {
	h, orchestrator := newHarness(t, accountA, accountB)

	due := []domain.Resource{{ID: "222", NeedsRenewal: true}}
	session := h.loggedIn(t, due, due)
	session.EXPECT().ChooseOrder(mockAnyContext(), domain.ResourceID("222")).Return(nil).Once()
	session.EXPECT().RequestPIN(mockAnyContext(), domain.ResourceID("222")).Return(nil).Once()
	h.pins.EXPECT().FetchLatestPIN(mockAnyContext()).Return("", false, nil).Times(3)

	notDue := []domain.Resource{{ID: "444", NeedsRenewal: false}}
	h.loggedIn(t, notDue, notDue)

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts, 2)
	resource := report.Accounts[0].Resources[0]
	assert.Equal(t, domain.OutcomeFailed, resource.Outcome)
	assert.Contains(t, resource.Reason, "no PIN obtained after 3 attempts")
	assert.True(t, report.Accounts[1].LoggedIn)
	assert.Equal(t, domain.OutcomeNotDue, report.Accounts[1].Resources[0].Outcome)

	assert.Contains(t, logText(report), "ServerID 222 renewal error")
	assert.False(t, report.RenewalPerformed)
	assert.Equal(t, domain.RunStatusIdle, report.Status)
	assert.Empty(t, h.notifier.Sent())
}

func TestRunKeepsRenewalErrorWithoutNotifying(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	due := []domain.Resource{{ID: "222", NeedsRenewal: true}}
	session := h.loggedIn(t, due, due)
	session.EXPECT().ChooseOrder(mockAnyContext(), domain.ResourceID("222")).Return(errors.New("status 500")).Once()

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	resource := report.Accounts[0].Resources[0]
	assert.Equal(t, domain.OutcomeFailed, resource.Outcome)
	assert.Equal(t, "choose order: status 500", resource.Reason)
	assert.Equal(t, domain.RunStatusIdle, report.Status)
	assert.Empty(t, h.notifier.Sent())
}

func TestRunRenewsDuplicateListingOnce(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	session := h.loggedIn(t,
		[]domain.Resource{{ID: "222", NeedsRenewal: true}, {ID: "222", NeedsRenewal: true}},
		[]domain.Resource{{ID: "222", NeedsRenewal: false}},
	)
	expectRenewal(h, session, "222")

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts[0].Resources, 2)
	assert.Equal(t, domain.OutcomeRenewed, report.Accounts[0].Resources[0].Outcome)
	assert.Equal(t, domain.OutcomeDuplicate, report.Accounts[0].Resources[1].Outcome)
	assert.Len(t, h.notifier.Sent(), 1)
}

func TestRunSkipsAccountWhoseListingFails(t *testing.T) {
	h, orchestrator := newHarness(t, accountA, accountB)

	session := mocks.NewMockPortalSession(t)
	h.portal.EXPECT().NewSession().Return(session, nil).Once()
	expectLoginPage(session)
	session.EXPECT().SubmitCredentials(mockAnyContext(), accountA).Return(domain.PageAuthenticated, nil).Once()
	session.EXPECT().ListResources(mockAnyContext()).Return(nil, domain.ErrUnexpectedPage).Once()
	session.EXPECT().Close().Return().Once()

	notDue := []domain.Resource{{ID: "444", NeedsRenewal: false}}
	h.loggedIn(t, notDue, notDue)

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Accounts, 2)
	assert.Contains(t, report.Accounts[0].Error, "list servers")
	assert.Empty(t, report.Accounts[1].Error)
	assert.Equal(t, domain.RunStatusIdle, report.Status)
	assert.Empty(t, h.notifier.Sent())
}

func TestRunSendsErrorNotificationWhenNoAccountCanListServers(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	session := mocks.NewMockPortalSession(t)
	h.portal.EXPECT().NewSession().Return(session, nil).Once()
	expectLoginPage(session)
	session.EXPECT().SubmitCredentials(mockAnyContext(), accountA).Return(domain.PageAuthenticated, nil).Once()
	session.EXPECT().ListResources(mockAnyContext()).Return(nil, domain.ErrUnexpectedPage).Once()
	session.EXPECT().Close().Return().Once()

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusError, report.Status)
	assert.Contains(t, report.Error, "list servers failed for every account")

	sent := h.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.NotificationError, sent[0].Kind)
	assert.Contains(t, sent[0].Summary, domain.ErrUnexpectedPage.Error())
}

func TestRunSendsErrorNotificationOnPanic(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	h.portal.EXPECT().NewSession().RunAndReturn(func() (ports.PortalSession, error) {
		panic("boom")
	}).Once()

	report, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusError, report.Status)
	assert.Equal(t, "panic: boom", report.Error)

	sent := h.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.NotificationError, sent[0].Kind)
	assert.Contains(t, sent[0].Log, "renewal run aborted: panic: boom")
	assert.Equal(t, []domain.RunStatus{domain.RunStatusError}, h.metrics.runs)
	assert.Len(t, h.saved, 1)
}

func TestRunAbortsWhenContextCancelled(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := orchestrator.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusError, report.Status)
	require.Len(t, h.notifier.Sent(), 1)
	assert.Equal(t, domain.NotificationError, h.notifier.Sent()[0].Kind)
}

func TestRunRejectsOverlappingInvocation(t *testing.T) {
	h, orchestrator := newHarness(t, accountA)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	h.portal.EXPECT().NewSession().RunAndReturn(func() (ports.PortalSession, error) {
		once.Do(func() {
			close(started)
			<-release
		})
		return nil, errors.New("portal unreachable")
	}).Times(2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = orchestrator.Run(context.Background())
	}()

	<-started
	_, err := orchestrator.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrRunInProgress)

	_, err = orchestrator.Survey(context.Background(), SurveyObserver{})
	require.ErrorIs(t, err, domain.ErrRunInProgress)

	close(release)
	<-done
	assert.Len(t, h.saved, 1)
}

func TestSurveyListsServersPerAccount(t *testing.T) {
	h, orchestrator := newHarness(t, accountA, accountB)

	h.loggedIn(t, []domain.Resource{{ID: "111", NeedsRenewal: true}}, nil)

	failing := mocks.NewMockPortalSession(t)
	h.portal.EXPECT().NewSession().Return(failing, nil).Times(2)
	expectLoginPage(failing)
	failing.EXPECT().SubmitCredentials(mockAnyContext(), accountB).Return(domain.PageRejected, nil).Times(2)
	failing.EXPECT().Close().Return().Times(2)

	var started, done []string
	results, err := orchestrator.Survey(context.Background(), SurveyObserver{
		AccountStarted: func(index, total int, account string) {
			started = append(started, fmt.Sprintf("%d/%d %s", index, total, account))
		},
		AccountDone: func(index, total int, result AccountServers) {
			done = append(done, fmt.Sprintf("%d/%d %s due=%d", index, total, result.Account, result.Due()))
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1/2 ali***@example.com", "2/2 bob***@example.com"}, started)
	assert.Equal(t, []string{"1/2 ali***@example.com due=1", "2/2 bob***@example.com due=0"}, done)

	require.Len(t, results, 2)
	assert.Equal(t, "ali***@example.com", results[0].Account)
	assert.Equal(t, []domain.Resource{{ID: "111", NeedsRenewal: true}}, results[0].Resources)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrAuth)
	assert.Empty(t, h.notifier.Sent())
	assert.Empty(t, h.saved)
}

func logText(report domain.RunReport) string {
	var log domain.RunLog
	for _, entry := range report.Log {
		log.Append(entry)
	}
	return log.Text()
}
