package ports

import (
	"context"

	"github.com/bnema/euserv-renew/internal/domain"
)

type Portal interface {
	// NewSession returns an unauthenticated session with an empty cookie jar.
	NewSession() (PortalSession, error)
}

// PortalSession is one cookie/sess_id bound conversation with the portal.
// It is used by a single goroutine and discarded with Close.
type PortalSession interface {
	ID() string
	LoadLoginPage(ctx context.Context) error
	SubmitCredentials(ctx context.Context, account domain.Account) (domain.LoginPage, error)
	CaptchaImage(ctx context.Context) ([]byte, error)
	SubmitCaptcha(ctx context.Context, code string) (domain.LoginPage, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
	ChooseOrder(ctx context.Context, id domain.ResourceID) error
	RequestPIN(ctx context.Context, id domain.ResourceID) error
	ExchangePIN(ctx context.Context, id domain.ResourceID, pin domain.PIN) (domain.RenewalToken, error)
	ExtendContract(ctx context.Context, id domain.ResourceID, token domain.RenewalToken) error
	Close()
}
