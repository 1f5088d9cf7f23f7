package ports

import (
	"context"

	"github.com/bnema/euserv-renew/internal/domain"
)

type RunHistoryRepository interface {
	Save(ctx context.Context, report domain.RunReport) error
	// List returns stored runs, newest first.
	List(ctx context.Context) ([]domain.RunReport, error)
}
