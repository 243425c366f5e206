package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"armentum/internal/config"
)

// Provider delivers a single email through an external service.
type Provider interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Mailer composes the emails the application sends and delegates delivery
// to the configured provider. Callers dispatch it on a goroutine; delivery
// failures are logged, never surfaced to the request that triggered them.
type Mailer struct {
	provider Provider
	appURL   string
}

// New selects a provider from configuration. Development environments log
// emails instead of sending them.
func New(cfg *config.Config) *Mailer {
	return &Mailer{
		provider: selectProvider(cfg),
		appURL:   cfg.AppURL,
	}
}

func selectProvider(cfg *config.Config) Provider {
	if cfg.Environment == "development" {
		return &developmentProvider{from: cfg.EmailFrom}
	}
	switch cfg.EmailProvider {
	case "resend":
		if cfg.ResendAPIKey != "" {
			return newResendProvider(cfg.ResendAPIKey, cfg.EmailFrom)
		}
	case "sendgrid":
		if cfg.SendGridAPIKey != "" {
			return newSendGridProvider(cfg.SendGridAPIKey, cfg.EmailFrom)
		}
	}
	log.Println("no email provider configured, falling back to development mode")
	return &developmentProvider{from: cfg.EmailFrom}
}

// SendVerificationEmail sends the account verification link.
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", m.appURL, token)
	html := fmt.Sprintf(`<html><body>
<h2>Bienvenido a Armentum</h2>
<p>Por favor, verifica tu cuenta haciendo clic en el siguiente enlace:</p>
<p><a href="%s">Verificar cuenta</a></p>
<p>Este enlace expirará en 24 horas.</p>
<p>Si no creaste esta cuenta, puedes ignorar este correo.</p>
</body></html>`, verifyURL)
	return m.provider.Send(ctx, email, "Verifica tu cuenta - Armentum", html)
}

type resendProvider struct {
	apiKey string
	from   string
	client *http.Client
}

func newResendProvider(apiKey, from string) *resendProvider {
	return &resendProvider{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers through the Resend REST API.
func (p *resendProvider) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(map[string]any{
		"from":    p.from,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}
	return nil
}

type sendGridProvider struct {
	apiKey string
	from   string
	client *http.Client
}

func newSendGridProvider(apiKey, from string) *sendGridProvider {
	return &sendGridProvider{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers through the SendGrid v3 mail API.
func (p *sendGridProvider) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": to}}},
		},
		"from":    map[string]string{"email": p.from},
		"subject": subject,
		"content": []map[string]string{{"type": "text/html", "value": html}},
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.sendgrid.com/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

type developmentProvider struct {
	from string
}

// Send logs the email instead of delivering it.
func (p *developmentProvider) Send(ctx context.Context, to, subject, html string) error {
	log.Printf("development email from=%s to=%s subject=%q\n%s", p.from, to, subject, html)
	return nil
}
