package domain

// LoginPage classifies the portal's answer to a login or captcha submission.
type LoginPage int

const (
	PageRejected LoginPage = iota
	PageAuthenticated
	PageCaptcha
)

func (p LoginPage) String() string {
	switch p {
	case PageAuthenticated:
		return "authenticated"
	case PageCaptcha:
		return "captcha"
	default:
		return "rejected"
	}
}
