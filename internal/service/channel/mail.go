package channel

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"bugtrail/internal/config"
	"bugtrail/internal/domain"
)

// mailChannel delivers over SMTP. The gomail dialer picks implicit TLS for
// port 465 and STARTTLS for everything else, and only authenticates when a
// username is configured.
type mailChannel struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewMailChannel(cfg *config.Config, log zerolog.Logger) Channel {
	return &mailChannel{
		cfg: cfg,
		log: log.With().Str("channel", "email").Logger(),
	}
}

func (m *mailChannel) Kind() domain.Channel {
	return domain.ChannelEmail
}

func (m *mailChannel) Enabled() bool {
	return m.cfg.SMTPHost != "" && m.cfg.SMTPFrom != ""
}

func (m *mailChannel) ValidateRecipient(rcpt Recipient) bool {
	return rcpt.Email != ""
}

func (m *mailChannel) Send(ctx context.Context, msg Message, rcpt Recipient) bool {
	if !m.Enabled() || !m.ValidateRecipient(rcpt) {
		return false
	}

	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.cfg.SMTPFrom, m.cfg.SMTPFromName)
	mail.SetAddressHeader("To", rcpt.Email, rcpt.DisplayName)
	mail.SetHeader("Subject", msg.Title)
	mail.SetBody("text/plain", msg.Body)
	mail.AddAlternative("text/html", htmlBody(msg))

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername, m.cfg.SMTPPassword)

	if err := dialer.DialAndSend(mail); err != nil {
		m.log.Warn().Err(err).Str("to", rcpt.Email).Msg("mail delivery failed")
		return false
	}

	m.log.Debug().Str("to", rcpt.Email).Msg("mail delivered")
	return true
}

func htmlBody(msg Message) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h3>%s</h3>", html.EscapeString(msg.Title)))
	for _, line := range strings.Split(msg.Body, "\n") {
		b.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(line)))
	}
	b.WriteString("</body></html>")
	return b.String()
}
