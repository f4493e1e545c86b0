package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/smtp"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
)

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends alert notifications over SMTP. Sends are fire-and-forget from
// the caller's point of view: acceptance by the relay is logged, delivery is
// not tracked.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
	sendMail sendMailFunc
}

func NewMailer(host string, port int, username, password, from string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

func (m *Mailer) Configured() bool {
	return m.host != "" && m.port != 0 && m.from != ""
}

func (m *Mailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if !strings.Contains(to, "@") {
		return fmt.Errorf("invalid recipient address: %q", to)
	}

	message, err := buildMessage(m.from, to, subject, textBody, htmlBody)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := m.sendMail(addr, auth, m.from, []string{to}, message); err != nil {
		m.logger.Warn("smtp send failed", zap.String("to", to), zap.Error(err))
		return err
	}

	m.logger.Info("smtp send accepted", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, textBody, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	// Plain part first: multipart/alternative lists the least preferred
	// rendering before the richer one.
	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", textBody},
		{"text/html; charset=utf-8", htmlBody},
	}
	for _, p := range parts {
		contentType, body := p.contentType, p.body
		if body == "" {
			continue
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		encoder := quotedprintable.NewWriter(part)
		if _, err := encoder.Write([]byte(body)); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
