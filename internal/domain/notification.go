package domain

import "context"

// Notifier delivers one logical message to a set of recipient emails as a
// single fan-out batch (infrastructure port). Delivery failure is reported
// to the caller but must never roll back a committed list change.
type Notifier interface {
	SendToRecipients(ctx context.Context, emails []string, title, body string) error
}
