package channel

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"bugtrail/internal/config"
)

func TestMailChannel_Enabled(t *testing.T) {
	ch := NewMailChannel(&config.Config{}, zerolog.Nop())
	assert.False(t, ch.Enabled())

	ch = NewMailChannel(&config.Config{SMTPHost: "smtp.example.com"}, zerolog.Nop())
	assert.False(t, ch.Enabled())

	ch = NewMailChannel(&config.Config{SMTPHost: "smtp.example.com", SMTPFrom: "noreply@example.com"}, zerolog.Nop())
	assert.True(t, ch.Enabled())
}

func TestMailChannel_ValidateRecipient(t *testing.T) {
	ch := NewMailChannel(&config.Config{}, zerolog.Nop())

	assert.False(t, ch.ValidateRecipient(Recipient{DisplayName: "Dana"}))
	assert.True(t, ch.ValidateRecipient(Recipient{Email: "dana@example.com"}))
}

func TestHTMLBody_EscapesContent(t *testing.T) {
	out := htmlBody(Message{
		Title: "Bug <script>",
		Body:  "line one\nline & two",
	})

	assert.Contains(t, out, "Bug &lt;script&gt;")
	assert.Contains(t, out, "<p>line one</p>")
	assert.Contains(t, out, "line &amp; two")
	assert.NotContains(t, out, "<script>")
}
