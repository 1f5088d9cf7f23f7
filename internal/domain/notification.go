package domain

type NotificationKind string

const (
	NotificationRenewed NotificationKind = "renewed"
	NotificationError   NotificationKind = "error"
)

// Notification is channel-neutral; each notifier decides how much of Log it
// can carry.
type Notification struct {
	Kind    NotificationKind
	Title   string
	Summary string
	Log     string
}
