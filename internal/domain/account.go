package domain

import (
	"fmt"
	"strings"
)

type Account struct {
	Username string
	Password string
}

// PairAccounts zips the configured username and password lists.
func PairAccounts(usernames, passwords []string) ([]Account, error) {
	if len(usernames) == 0 && len(passwords) == 0 {
		return nil, ErrNoAccounts
	}
	if len(usernames) != len(passwords) {
		return nil, fmt.Errorf("%w: %d usernames, %d passwords", ErrAccountMismatch, len(usernames), len(passwords))
	}

	accounts := make([]Account, 0, len(usernames))
	for i := range usernames {
		username := strings.TrimSpace(usernames[i])
		if username == "" {
			return nil, fmt.Errorf("account %d: username is empty", i+1)
		}
		accounts = append(accounts, Account{Username: username, Password: passwords[i]})
	}

	return accounts, nil
}

// MaskedUsername keeps enough of the login to tell accounts apart in logs.
func (a Account) MaskedUsername() string {
	local, host, found := strings.Cut(a.Username, "@")
	if len(local) > 3 {
		local = local[:3]
	}
	masked := local + "***"
	if found {
		masked += "@" + host
	}
	return masked
}
