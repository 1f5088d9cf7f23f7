package ports

import (
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
)

type Metrics interface {
	LoginFinished(success bool, attempts int)
	ResourceFinished(outcome domain.ResourceOutcome)
	RunFinished(status domain.RunStatus, duration time.Duration)
}

type NopMetrics struct{}

func (NopMetrics) LoginFinished(bool, int) {}
func (NopMetrics) ResourceFinished(domain.ResourceOutcome) {}
func (NopMetrics) RunFinished(domain.RunStatus, time.Duration) {}
