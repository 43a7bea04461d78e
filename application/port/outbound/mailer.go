package outbound

import "context"

// Mailer sends transactional email. Every call site treats failures as
// non-fatal: the primary state change is already committed when a send runs.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
	SendHTML(ctx context.Context, to, subject, html string) error
}
