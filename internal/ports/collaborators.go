package ports

import (
	"context"

	"github.com/bnema/euserv-renew/internal/domain"
)

type CaptchaSolver interface {
	Solve(ctx context.Context, image []byte) (string, error)
}

// PinFetcher reads the newest message of the configured mailbox. found is
// false when the message carries no PIN; err is reserved for mailbox failures.
type PinFetcher interface {
	FetchLatestPIN(ctx context.Context) (pin string, found bool, err error)
}

type Notifier interface {
	Name() string
	Notify(ctx context.Context, notification domain.Notification) error
}
