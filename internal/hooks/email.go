package hooks

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/inbucket/html2text"
	mail "github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// EmailHook mails the group whenever a recording date is confirmed or
// unconfirmed. The plain-text alternative is derived from the HTML body.
type EmailHook struct {
	cfg        SMTPConfig
	recipients []string
}

func NewEmailHook(cfg SMTPConfig, recipients []string) *EmailHook {
	return &EmailHook{cfg: cfg, recipients: recipients}
}

func (h *EmailHook) Name() string { return "email" }

func (h *EmailHook) OnConfirm(ctx context.Context, date time.Time, description string, confirmedBy string) error {
	day := date.Format("Monday, January 2, 2006")

	body := fmt.Sprintf("<p>Recording confirmed for <b>%s</b>.</p>", html.EscapeString(day))
	if description != "" {
		body += fmt.Sprintf("<p>%s</p>", html.EscapeString(description))
	}
	if confirmedBy != "" {
		body += fmt.Sprintf("<p>Confirmed by %s.</p>", html.EscapeString(confirmedBy))
	}

	return h.send(ctx, "📅 Podcast date confirmed: "+date.Format("2006-01-02"), body)
}

func (h *EmailHook) OnUnconfirm(ctx context.Context, date time.Time) error {
	day := date.Format("Monday, January 2, 2006")
	body := fmt.Sprintf("<p>The recording on <b>%s</b> has been unconfirmed.</p>", html.EscapeString(day))

	return h.send(ctx, "❌ Podcast date unconfirmed: "+date.Format("2006-01-02"), body)
}

func (h *EmailHook) send(ctx context.Context, subject, htmlBody string) error {
	if len(h.recipients) == 0 {
		return nil
	}

	text, err := html2text.FromString(htmlBody, html2text.Options{})
	if err != nil {
		return fmt.Errorf("failed to convert HTML to text: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(h.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(h.recipients...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{mail.WithPort(h.cfg.Port)}
	if h.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(h.cfg.Username),
			mail.WithPassword(h.cfg.Password),
		)
	}

	client, err := mail.NewClient(h.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
