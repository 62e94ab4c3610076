package email

// Mailer sends fully-rendered messages to one or more recipients.
type Mailer interface {
	SendPlain(to []string, subject, body string) error
	SendHTML(to []string, subject, htmlBody string) error
}
