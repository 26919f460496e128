package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/example/grocery/internal/config"
)

// DeliveryReceipt reports the outcome of one send. PreviewURL is set only by
// the sandbox transport.
type DeliveryReceipt struct {
	Delivered  bool   `json:"delivered"`
	MessageID  string `json:"message_id"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// EmailTransport delivers a single HTML email.
type EmailTransport interface {
	Send(to, subject, htmlBody string) (*DeliveryReceipt, error)
}

// EmailService formats and sends transactional mail. The transport is picked
// once on first use: real SMTP when credentials are configured, otherwise a
// sandbox transport that records messages and hands back a preview link.
type EmailService struct {
	cfg       *config.Config
	once      sync.Once
	transport EmailTransport
}

// NewEmailService constructs an EmailService.
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendVerificationCode delivers the password-reset code. A send failure is
// returned to the caller; the persisted code stays valid either way.
func (s *EmailService) SendVerificationCode(email, code string) (*DeliveryReceipt, error) {
	s.ensureTransport()

	subject := "Password Reset Verification Code - E-Grocery Store"
	return s.transport.Send(email, subject, verificationEmailBody(code))
}

func (s *EmailService) ensureTransport() {
	s.once.Do(func() {
		if s.transport != nil {
			return
		}
		if s.cfg.SMTPConfigured() {
			s.transport = &smtpTransport{cfg: s.cfg}
			log.Println("email service initialized with SMTP transport")
			return
		}
		s.transport = newSandboxTransport()
		log.Println("email service initialized with sandbox transport (no SMTP credentials)")
	})
}

// smtpTransport sends through a real SMTP relay.
type smtpTransport struct {
	cfg *config.Config
}

func (t *smtpTransport) Send(to, subject, htmlBody string) (*DeliveryReceipt, error) {
	messageID := uuid.NewString()

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", t.cfg.SMTPFrom)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Message-ID: <%s@e-grocery>\r\n", messageID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := t.cfg.SMTPHost + ":" + t.cfg.SMTPPort
	auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPassword, t.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, t.cfg.SMTPUser, []string{to}, []byte(msg.String())); err != nil {
		return nil, fmt.Errorf("smtp send: %w", err)
	}

	return &DeliveryReceipt{Delivered: true, MessageID: messageID}, nil
}

// SandboxMessage is a message captured by the sandbox transport.
type SandboxMessage struct {
	ID      string
	To      string
	Subject string
	Body    string
}

type sandboxTransport struct {
	mu       sync.Mutex
	messages []SandboxMessage
}

func newSandboxTransport() *sandboxTransport {
	return &sandboxTransport{}
}

func (t *sandboxTransport) Send(to, subject, htmlBody string) (*DeliveryReceipt, error) {
	msg := SandboxMessage{
		ID:      uuid.NewString(),
		To:      to,
		Subject: subject,
		Body:    htmlBody,
	}

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()

	previewURL := fmt.Sprintf("https://sandbox.e-grocery.local/messages/%s", msg.ID)
	log.Printf("sandbox email to %s: %s (preview %s)", to, subject, previewURL)

	return &DeliveryReceipt{
		Delivered:  true,
		MessageID:  msg.ID,
		PreviewURL: previewURL,
	}, nil
}

// Messages returns a copy of everything captured so far.
func (t *sandboxTransport) Messages() []SandboxMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SandboxMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

func verificationEmailBody(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #4CAF50; margin: 0;">E-Grocery Store</h1>
    <p style="color: #666; margin: 5px 0;">Your Online Grocery Store</p>
  </div>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px;">
    <h2 style="color: #333; margin-top: 0;">Password Reset Request</h2>
    <p style="color: #666; line-height: 1.6;">
      We received your password reset request. Please use the following
      verification code to reset your password:
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <div style="background-color: #4CAF50; color: white; font-size: 32px; font-weight: bold; padding: 15px 30px; border-radius: 8px; display: inline-block; letter-spacing: 5px;">%s</div>
    </div>
    <p style="color: #666; line-height: 1.6;">
      This verification code expires in <strong>10 minutes</strong> and can be
      used only once. If you did not request a password reset, please ignore
      this email.
    </p>
  </div>
</div>`, code)
}
