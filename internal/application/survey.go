package application

import (
	"context"
	"fmt"

	"github.com/bnema/euserv-renew/internal/domain"
)

type AccountServers struct {
	Account   string
	Resources []domain.Resource
	Err       error
}

// Due counts the listed servers that need renewal.
func (a AccountServers) Due() int {
	due := 0
	for _, resource := range a.Resources {
		if resource.NeedsRenewal {
			due++
		}
	}
	return due
}

// SurveyObserver receives progress while Survey walks the accounts. Both
// hooks are optional and are called from the surveying goroutine.
type SurveyObserver struct {
	AccountStarted func(index, total int, account string)
	AccountDone    func(index, total int, result AccountServers)
}

func (s SurveyObserver) started(index, total int, account string) {
	if s.AccountStarted != nil {
		s.AccountStarted(index, total, account)
	}
}

func (s SurveyObserver) done(index, total int, result AccountServers) {
	if s.AccountDone != nil {
		s.AccountDone(index, total, result)
	}
}

// Survey logs into every account and lists its servers without renewing
// anything.
func (o *Orchestrator) Survey(ctx context.Context, observer SurveyObserver) ([]AccountServers, error) {
	if !o.running.TryLock() {
		return nil, domain.ErrRunInProgress
	}
	defer o.running.Unlock()

	inv := NewInvocation(o.clock, o.logger)
	total := len(o.accounts)
	results := make([]AccountServers, 0, total)

	for i, account := range o.accounts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		entry := AccountServers{Account: account.MaskedUsername()}
		observer.started(i+1, total, entry.Account)

		login := o.login.Login(ctx, inv, account)
		if login.OK() {
			resources, err := login.Value.ListResources(ctx)
			login.Value.Close()
			if err != nil {
				entry.Err = fmt.Errorf("list servers: %w", err)
			}
			entry.Resources = resources
		} else {
			entry.Err = login.Err
		}

		results = append(results, entry)
		observer.done(i+1, total, entry)
	}

	return results, nil
}
