package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/amilmether/fundEd-Web/app/config"
)

// TemplateKind selects which transactional email to compose.
type TemplateKind string

const (
	TemplatePaymentSubmitted TemplateKind = "payment_submitted"
	TemplatePaymentApproved  TemplateKind = "payment_approved"
	TemplatePrintDistributed TemplateKind = "print_distributed"
	TemplatePaymentReminder  TemplateKind = "payment_reminder"
)

// TemplateParams carries the values substituted into an email template.
type TemplateParams struct {
	StudentName   string
	StudentEmail  string
	EventName     string
	Amount        float64
	PaymentMethod string
}

// SendResult is the outcome of a dispatch attempt. Callers only need the
// boolean; Message carries detail for the operator notice.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TextGenerator produces an email body from a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Mailer hands a composed email to the outbound transport.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Notifier composes transactional emails and hands them to the mail
// transport. Exactly one send attempt per call; no queuing, no retry, no
// idempotency key. Callers that retry on failure risk duplicate emails.
type Notifier struct {
	gen    TextGenerator
	mailer Mailer
}

// NewNotifier wires a dispatcher from its two collaborators.
func NewNotifier(gen TextGenerator, mailer Mailer) *Notifier {
	return &Notifier{gen: gen, mailer: mailer}
}

// Send generates the email body for the template kind and sends it. An empty
// generated body is a failure and no send is attempted.
func (n *Notifier) Send(ctx context.Context, kind TemplateKind, params TemplateParams) SendResult {
	prompt, subject, err := buildTemplate(kind, params)
	if err != nil {
		return SendResult{Success: false, Message: err.Error()}
	}

	body, err := n.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(body) == "" {
		return SendResult{Success: false, Message: "Failed to generate email content."}
	}

	html := strings.ReplaceAll(body, "\n", "<br>")
	if err := n.mailer.Send(params.StudentEmail, subject, html); err != nil {
		return SendResult{Success: false, Message: "Failed to send email."}
	}

	return SendResult{Success: true, Message: fmt.Sprintf("Email successfully sent to %s.", params.StudentEmail)}
}

func buildTemplate(kind TemplateKind, params TemplateParams) (prompt, subject string, err error) {
	switch kind {
	case TemplatePaymentSubmitted:
		subject = fmt.Sprintf("Your payment for %q has been submitted", params.EventName)
		prompt = fmt.Sprintf(`You are an assistant for the FundEd platform.
Generate a friendly email body to confirm that a student's payment has been submitted for verification.

Student's name: %s.
Event: %s.
Amount: %.2f.
Payment Method: %s.

The email should:
1. Greet the student by name.
2. Confirm that their payment for the specified event and amount has been submitted.
3. Mention that it is now pending verification by their class representative.
4. Be concise and polite.
5. End with "Sincerely, The FundEd Team".

Do not include a subject line.`, params.StudentName, params.EventName, params.Amount, params.PaymentMethod)

	case TemplatePaymentApproved:
		subject = fmt.Sprintf("Your payment for %q has been approved!", params.EventName)
		prompt = fmt.Sprintf(`You are an assistant for the FundEd platform.
Generate a friendly email body to notify a student that their payment has been approved.

Student's name: %s.
Event: %s.
Amount: %.2f.

The email should:
1. Greet the student by name.
2. Joyfully inform them that their payment for the specified event has been approved by their class representative.
3. Mention the event name and amount.
4. Be concise and polite.
5. End with "Sincerely, The FundEd Team".

Do not include a subject line.`, params.StudentName, params.EventName, params.Amount)

	case TemplatePrintDistributed:
		subject = fmt.Sprintf("Your print for %q has been distributed!", params.EventName)
		prompt = fmt.Sprintf(`You are an assistant for the FundEd platform.
Generate a friendly and professional email body to notify a student that their print material is ready and has been distributed.

The student's name is: %s.
The event is: %s.

The email should:
1. Greet the student by name.
2. Clearly state that their print material for the specified event has been distributed.
3. Be concise and polite.
4. End with "Sincerely, The FundEd Team".

Do not include a subject line.`, params.StudentName, params.EventName)

	case TemplatePaymentReminder:
		subject = fmt.Sprintf("Reminder: payment for %q is due soon", params.EventName)
		prompt = fmt.Sprintf(`You are an assistant for the FundEd platform.
Generate a friendly email body reminding a student that the payment deadline for an event is approaching.

Student's name: %s.
Event: %s.
Amount due: %.2f.

The email should:
1. Greet the student by name.
2. Remind them that their payment for the specified event and amount is still outstanding.
3. Encourage them to pay before the deadline.
4. Be concise and polite.
5. End with "Sincerely, The FundEd Team".

Do not include a subject line.`, params.StudentName, params.EventName, params.Amount)

	default:
		return "", "", fmt.Errorf("unknown template kind %q", kind)
	}
	return prompt, subject, nil
}

// SMTPMailer sends email over plain SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from the process SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one HTML email. Credentials missing means the transport is
// unconfigured and the send fails without a connection attempt.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		return fmt.Errorf("email service is not configured")
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := []byte("From: \"FundEd\" <" + m.cfg.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}
