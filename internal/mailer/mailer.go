package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// InvitationEmail carries the data rendered into the invitation mail.
type InvitationEmail struct {
	BoardTitle  string
	InviterName string
	AcceptURL   string
	DeclineURL  string
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Board Invitation</title>
</head>
<body>
    <p>Hello, you have been invited to join {{.BoardTitle}}.</p>
    <p>This invitation was sent by {{.InviterName}}.</p>
    <p>Click the link below to join the board.</p>
    <a href="{{.AcceptURL}}">Accept invitation</a>
    <p>If you want to decline the invitation, click the link below.</p>
    <a href="{{.DeclineURL}}">Decline invitation</a>
</body>
</html>
`))

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendInvitation renders and delivers an invitation mail. Delivery is
// best-effort from the workflow's point of view: the caller logs
// failures instead of rolling back the invitation row.
func (m *SMTPMailer) SendInvitation(to string, email InvitationEmail) error {
	var body bytes.Buffer
	if err := invitationTemplate.Execute(&body, email); err != nil {
		return fmt.Errorf("failed to render invitation email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("You've been invited to %s", email.BoardTitle))
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}
