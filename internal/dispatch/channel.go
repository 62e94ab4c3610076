package dispatch

import "github.com/weatherlyhq/weatherly/internal/platform/email"

type mailerChannel struct {
	mailer email.Mailer
}

var _ Channel = (*mailerChannel)(nil)

// NewMailerChannel adapts a Mailer to the dispatcher's Channel contract.
func NewMailerChannel(mailer email.Mailer) Channel {
	return &mailerChannel{mailer: mailer}
}

func (c *mailerChannel) Send(to, subject, htmlBody string) error {
	return c.mailer.SendHTML([]string{to}, subject, htmlBody)
}
