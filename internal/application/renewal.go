package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"go.uber.org/zap"
)

type RenewalState string

const (
	RenewalRequested       RenewalState = "requested"
	RenewalExtensionChosen RenewalState = "extension_chosen"
	RenewalPinTriggered    RenewalState = "pin_triggered"
	RenewalPinAwaited      RenewalState = "pin_awaited"
	RenewalTokenAcquired   RenewalState = "token_acquired"
	RenewalSubmitted       RenewalState = "submitted"
	RenewalSuccess         RenewalState = "success"
	RenewalFailed          RenewalState = "failed"
)

type RenewalPolicy struct {
	// PinInitialWait gives the mail a head start before the first fetch.
	PinInitialWait time.Duration
	PinAttempts    int
	PinRetryDelay  time.Duration
}

func DefaultRenewalPolicy() RenewalPolicy {
	return RenewalPolicy{
		PinInitialWait: 15 * time.Second,
		PinAttempts:    3,
		PinRetryDelay:  5 * time.Second,
	}
}

type RenewalMachine struct {
	pins   ports.PinFetcher
	clock  ports.Clock
	policy RenewalPolicy
}

func NewRenewalMachine(pins ports.PinFetcher, clock ports.Clock, policy RenewalPolicy) *RenewalMachine {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RenewalMachine{pins: pins, clock: clock, policy: policy}
}

// Renew drives one resource through the PIN-authorised extension. A nil
// error means the portal accepted the extension and the invocation's
// renewal-performed flag is set.
func (m *RenewalMachine) Renew(ctx context.Context, inv *Invocation, session ports.PortalSession, id domain.ResourceID) error {
	var (
		pin     domain.PIN
		token   domain.RenewalToken
		failure error
	)

	state := RenewalRequested
	for {
		inv.trace("renewal", string(state), zap.String("resource", string(id)))

		switch state {
		case RenewalRequested:
			if err := session.ChooseOrder(ctx, id); err != nil {
				failure = fmt.Errorf("choose order: %w", err)
				state = RenewalFailed
				continue
			}
			state = RenewalExtensionChosen

		case RenewalExtensionChosen:
			if err := session.RequestPIN(ctx, id); err != nil {
				failure = fmt.Errorf("request security PIN: %w", err)
				state = RenewalFailed
				continue
			}
			state = RenewalPinTriggered

		case RenewalPinTriggered:
			inv.Record(domain.LogMail, "waiting for PIN mail to arrive", zap.String("resource", string(id)))
			m.clock.Sleep(m.policy.PinInitialWait)

			fetched, err := m.awaitPIN(ctx, inv)
			if err != nil {
				failure = err
				state = RenewalFailed
				continue
			}
			pin = fetched
			state = RenewalPinAwaited

		case RenewalPinAwaited:
			acquired, err := session.ExchangePIN(ctx, id, pin)
			if err != nil {
				failure = fmt.Errorf("exchange PIN for token: %w", err)
				state = RenewalFailed
				continue
			}
			token = acquired
			state = RenewalTokenAcquired

		case RenewalTokenAcquired:
			if err := session.ExtendContract(ctx, id, token); err != nil {
				failure = fmt.Errorf("extend contract: %w", err)
				state = RenewalFailed
				continue
			}
			state = RenewalSubmitted

		case RenewalSubmitted:
			inv.markRenewalPerformed()
			state = RenewalSuccess

		case RenewalSuccess:
			return nil

		case RenewalFailed:
			return failure
		}
	}
}

func (m *RenewalMachine) awaitPIN(ctx context.Context, inv *Invocation) (domain.PIN, error) {
	result := Retry(ctx, m.clock, m.policy.PinAttempts, m.policy.PinRetryDelay, func(ctx context.Context, attempt int) (domain.PIN, error) {
		raw, found, err := m.pins.FetchLatestPIN(ctx)
		switch {
		case err != nil:
			inv.Recordf(domain.LogMail, "PIN fetch attempt %d failed: %v", attempt, err)
			return "", err
		case !found:
			inv.Recordf(domain.LogMail, "PIN fetch attempt %d found no PIN in the latest mail", attempt)
			return "", domain.ErrPinDelivery
		}

		pin, err := domain.ParsePIN(raw)
		if err != nil {
			return "", Permanent(err)
		}
		return pin, nil
	})

	if !result.OK() {
		if result.Attempts >= m.policy.PinAttempts || ctx.Err() != nil {
			return "", fmt.Errorf("%w after %d attempts: %w", domain.ErrPinDelivery, result.Attempts, result.Err)
		}
		return "", result.Err
	}

	inv.Record(domain.LogMail, "PIN received")
	return result.Value, nil
}
