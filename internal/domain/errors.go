package domain

import "errors"

var (
	ErrAuth            = errors.New("login failed")
	ErrCaptcha         = errors.New("captcha rejected")
	ErrPinDelivery     = errors.New("no PIN obtained")
	ErrMalformedPIN    = errors.New("malformed PIN")
	ErrTokenExchange   = errors.New("PIN token exchange rejected")
	ErrSubmission      = errors.New("contract extension rejected")
	ErrUnexpectedPage  = errors.New("unexpected portal page")
	ErrAccountMismatch = errors.New("usernames and passwords count mismatch")
	ErrNoAccounts      = errors.New("no accounts configured")
	ErrRunInProgress   = errors.New("renewal run already in progress")
	ErrSecretNotFound  = errors.New("secret not found")
)
