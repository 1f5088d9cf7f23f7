package application

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dispatcher fans a notification out to every configured channel. Channel
// failures are logged and never returned.
type Dispatcher struct {
	notifiers []ports.Notifier
	logger    *zap.Logger
}

func NewDispatcher(logger *zap.Logger, notifiers ...ports.Notifier) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	active := make([]ports.Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			active = append(active, notifier)
		}
	}

	return &Dispatcher{notifiers: active, logger: logger}
}

func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.notifiers))
	for _, notifier := range d.notifiers {
		names = append(names, notifier.Name())
	}
	return names
}

// Dispatch sends n on all channels concurrently and reports how many
// accepted it.
func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification) int {
	if len(d.notifiers) == 0 {
		d.logger.Info("no notification channel configured", zap.String("notification", string(n.Kind)))
		return 0
	}

	var (
		g         errgroup.Group
		delivered atomic.Int32
	)
	for _, notifier := range d.notifiers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("notifier panicked", zap.String("channel", notifier.Name()), zap.Any("panic", r))
				}
			}()

			if err := notifier.Notify(ctx, n); err != nil {
				d.logger.Warn("notification failed", zap.String("channel", notifier.Name()), zap.Error(err))
				return nil
			}
			delivered.Add(1)
			d.logger.Info("notification sent", zap.String("channel", notifier.Name()), zap.String("notification", string(n.Kind)))
			return nil
		})
	}
	_ = g.Wait()

	return int(delivered.Load())
}

// renewedNotification summarises the final outcomes, after the check pass,
// so a server still due is never reported as renewed.
func renewedNotification(inv *Invocation) domain.Notification {
	var renewed, unconfirmed []string
	for _, account := range inv.report.Accounts {
		for _, resource := range account.Resources {
			switch resource.Outcome {
			case domain.OutcomeRenewed:
				renewed = append(renewed, string(resource.ID))
			case domain.OutcomeVerifyFailed:
				unconfirmed = append(unconfirmed, string(resource.ID))
			}
		}
	}

	title := "EUserv renewal succeeded"
	var summary []string
	if len(renewed) > 0 {
		summary = append(summary, "Renewed: "+strings.Join(renewed, ", "))
	} else {
		title = "EUserv renewal not confirmed"
	}
	if len(unconfirmed) > 0 {
		summary = append(summary, "Still due after renewal: "+strings.Join(unconfirmed, ", "))
	}

	return domain.Notification{
		Kind:    domain.NotificationRenewed,
		Title:   title,
		Summary: strings.Join(summary, "; "),
		Log:     inv.Log().Text(),
	}
}

func errorNotification(inv *Invocation, err error) domain.Notification {
	return domain.Notification{
		Kind:    domain.NotificationError,
		Title:   "EUserv renewal error",
		Summary: "Renewal run failed: " + err.Error(),
		Log:     inv.Log().Text(),
	}
}
