package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"bugtrail/internal/config"
	"bugtrail/internal/domain"
)

const pushTokenHeader = "X-Push-Token"

type pushPayload struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// pushChannel posts a JSON payload to a push-notification gateway. The
// application token travels as a header credential; a per-user token on the
// recipient overrides the global default.
type pushChannel struct {
	cfg    *config.Config
	client *http.Client
	log    zerolog.Logger
}

func NewPushChannel(cfg *config.Config, log zerolog.Logger) Channel {
	return &pushChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With().Str("channel", "push").Logger(),
	}
}

func (p *pushChannel) Kind() domain.Channel {
	return domain.ChannelPush
}

func (p *pushChannel) Enabled() bool {
	return p.cfg.PushServerURL != "" && p.cfg.PushAppToken != ""
}

func (p *pushChannel) ValidateRecipient(rcpt Recipient) bool {
	return rcpt.PushToken != "" || p.cfg.PushAppToken != ""
}

func (p *pushChannel) Send(ctx context.Context, msg Message, rcpt Recipient) bool {
	if !p.Enabled() || !p.ValidateRecipient(rcpt) {
		return false
	}

	payload := pushPayload{
		Title:    msg.Title,
		Message:  msg.Body,
		Priority: externalPriority(msg.Priority),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn().Err(err).Msg("push payload marshal failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.PushServerURL+"/message", bytes.NewReader(body))
	if err != nil {
		p.log.Warn().Err(err).Msg("push request build failed")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(pushTokenHeader, p.token(rcpt))

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Stringer("user_id", rcpt.ID).Msg("push delivery failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.Warn().Int("status", resp.StatusCode).Stringer("user_id", rcpt.ID).Msg("push gateway rejected message")
		return false
	}

	p.log.Debug().Stringer("user_id", rcpt.ID).Msg("push delivered")
	return true
}

func (p *pushChannel) token(rcpt Recipient) string {
	if rcpt.PushToken != "" {
		return rcpt.PushToken
	}
	return p.cfg.PushAppToken
}

// externalPriority maps the internal 1..4 scale onto the gateway's 1..10 scale.
func externalPriority(p int) int {
	v := 2 * p
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
