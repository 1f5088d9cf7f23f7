package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"go.uber.org/zap"
)

type LoginState string

const (
	LoginStart                LoginState = "start"
	LoginPageLoaded           LoginState = "page_loaded"
	LoginCredentialsSubmitted LoginState = "credentials_submitted"
	LoginCaptchaChallenged    LoginState = "captcha_challenged"
	LoginCaptchaSubmitted     LoginState = "captcha_submitted"
	LoginAuthenticated        LoginState = "authenticated"
	LoginFailed               LoginState = "failed"
)

type LoginPolicy struct {
	MaxAttempts int
	RetryDelay  time.Duration
	// PageDelay is the pause between loading the login page and posting
	// credentials.
	PageDelay time.Duration
}

func DefaultLoginPolicy() LoginPolicy {
	return LoginPolicy{
		MaxAttempts: 10,
		RetryDelay:  2 * time.Second,
		PageDelay:   time.Second,
	}
}

type LoginMachine struct {
	portal  ports.Portal
	solver  ports.CaptchaSolver
	clock   ports.Clock
	metrics ports.Metrics
	policy  LoginPolicy
}

func NewLoginMachine(portal ports.Portal, solver ports.CaptchaSolver, clock ports.Clock, metrics ports.Metrics, policy LoginPolicy) *LoginMachine {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &LoginMachine{
		portal:  portal,
		solver:  solver,
		clock:   clock,
		metrics: metrics,
		policy:  policy,
	}
}

// Login authenticates account, restarting the whole sequence on a fresh
// session after every failure. On exhaustion the error wraps domain.ErrAuth.
func (m *LoginMachine) Login(ctx context.Context, inv *Invocation, account domain.Account) Attempt[ports.PortalSession] {
	result := Retry(ctx, m.clock, m.policy.MaxAttempts, m.policy.RetryDelay, func(ctx context.Context, attempt int) (ports.PortalSession, error) {
		if attempt > 1 {
			inv.Recordf(domain.LogLoginAttempt, "login attempt %d of %d", attempt, m.policy.MaxAttempts)
		}

		session, err := m.attempt(ctx, inv, account)
		if err != nil {
			inv.Record(domain.LogWarning, fmt.Sprintf("login attempt %d failed: %v", attempt, err),
				zap.String("account", account.MaskedUsername()))
			return nil, err
		}
		return session, nil
	})

	m.metrics.LoginFinished(result.OK(), result.Attempts)

	if !result.OK() {
		result.Err = fmt.Errorf("%w after %d attempts: %w", domain.ErrAuth, result.Attempts, result.Err)
	}
	return result
}

func (m *LoginMachine) attempt(ctx context.Context, inv *Invocation, account domain.Account) (ports.PortalSession, error) {
	session, err := m.portal.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open portal session: %w", err)
	}

	var (
		page    domain.LoginPage
		failure error
	)
	state := LoginStart
	for {
		inv.trace("login", string(state), zap.String("account", account.MaskedUsername()))

		switch state {
		case LoginStart:
			inv.Record(domain.LogInfo, "loading login page")
			if err := session.LoadLoginPage(ctx); err != nil {
				failure = fmt.Errorf("load login page: %w", err)
				state = LoginFailed
				continue
			}
			inv.Recordf(domain.LogInfo, "got session id %s", session.ID())
			state = LoginPageLoaded

		case LoginPageLoaded:
			m.clock.Sleep(m.policy.PageDelay)
			inv.Record(domain.LogInfo, "submitting credentials")
			page, err = session.SubmitCredentials(ctx, account)
			if err != nil {
				failure = fmt.Errorf("submit credentials: %w", err)
				state = LoginFailed
				continue
			}
			state = LoginCredentialsSubmitted

		case LoginCredentialsSubmitted:
			switch page {
			case domain.PageAuthenticated:
				state = LoginAuthenticated
			case domain.PageCaptcha:
				state = LoginCaptchaChallenged
			default:
				failure = fmt.Errorf("%w: credentials not accepted", domain.ErrUnexpectedPage)
				state = LoginFailed
			}

		case LoginCaptchaChallenged:
			inv.Record(domain.LogCaptcha, "captcha challenge detected, solving")
			page, err = m.solveCaptcha(ctx, inv, session)
			if err != nil {
				failure = err
				state = LoginFailed
				continue
			}
			state = LoginCaptchaSubmitted

		case LoginCaptchaSubmitted:
			// The portal only re-renders the challenge when the code was wrong.
			if page == domain.PageCaptcha {
				inv.Record(domain.LogCaptchaFailed, "captcha verification failed")
				failure = domain.ErrCaptcha
				state = LoginFailed
				continue
			}
			inv.Record(domain.LogCaptchaPassed, "captcha verification passed")
			state = LoginAuthenticated

		case LoginAuthenticated:
			inv.Record(domain.LogInfo, "login succeeded")
			return session, nil

		case LoginFailed:
			session.Close()
			if failure == nil {
				failure = errors.New("login failed")
			}
			return nil, failure
		}
	}
}

func (m *LoginMachine) solveCaptcha(ctx context.Context, inv *Invocation, session ports.PortalSession) (domain.LoginPage, error) {
	image, err := session.CaptchaImage(ctx)
	if err != nil {
		return domain.PageRejected, fmt.Errorf("download captcha image: %w", err)
	}

	code, err := m.solver.Solve(ctx, image)
	if err != nil {
		return domain.PageRejected, fmt.Errorf("solve captcha: %w", err)
	}
	inv.Recordf(domain.LogCaptcha, "captcha recognised as %s", code)

	page, err := session.SubmitCaptcha(ctx, code)
	if err != nil {
		return domain.PageRejected, fmt.Errorf("submit captcha: %w", err)
	}
	return page, nil
}
