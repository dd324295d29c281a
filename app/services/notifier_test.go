package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amilmether/fundEd-Web/app/config"
)

type fakeGenerator struct {
	output  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.output, f.err
}

type fakeMailer struct {
	err   error
	sends []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.sends = append(f.sends, sentMail{to: to, subject: subject, body: htmlBody})
	return f.err
}

func approvedParams() TemplateParams {
	return TemplateParams{
		StudentName:  "Asha Verma",
		StudentEmail: "asha@example.com",
		EventName:    "Annual Day",
		Amount:       500,
	}
}

func TestNotifier_Send(t *testing.T) {
	t.Run("successful dispatch", func(t *testing.T) {
		gen := &fakeGenerator{output: "Dear Asha,\nyour payment is approved.\nSincerely, The FundEd Team"}
		mailer := &fakeMailer{}
		n := NewNotifier(gen, mailer)

		result := n.Send(context.Background(), TemplatePaymentApproved, approvedParams())
		if !result.Success {
			t.Fatalf("Expected success, got failure: %s", result.Message)
		}
		if len(mailer.sends) != 1 {
			t.Fatalf("Expected exactly one send attempt, got %d", len(mailer.sends))
		}

		sent := mailer.sends[0]
		if sent.to != "asha@example.com" {
			t.Errorf("Expected recipient asha@example.com, got %s", sent.to)
		}
		if sent.subject != `Your payment for "Annual Day" has been approved!` {
			t.Errorf("Unexpected subject: %s", sent.subject)
		}
		if strings.Contains(sent.body, "\n") || !strings.Contains(sent.body, "<br>") {
			t.Errorf("Expected newlines converted to <br>, got %q", sent.body)
		}
	})

	t.Run("prompt carries template parameters", func(t *testing.T) {
		gen := &fakeGenerator{output: "body"}
		n := NewNotifier(gen, &fakeMailer{})

		n.Send(context.Background(), TemplatePaymentApproved, approvedParams())
		if len(gen.prompts) != 1 {
			t.Fatalf("Expected one generation call, got %d", len(gen.prompts))
		}
		prompt := gen.prompts[0]
		for _, want := range []string{"Asha Verma", "Annual Day", "500.00"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("Expected prompt to contain %q", want)
			}
		}
	})

	t.Run("empty body means no send attempt", func(t *testing.T) {
		gen := &fakeGenerator{output: "   \n  "}
		mailer := &fakeMailer{}
		n := NewNotifier(gen, mailer)

		result := n.Send(context.Background(), TemplatePaymentSubmitted, approvedParams())
		if result.Success {
			t.Fatal("Expected failure on empty generated body")
		}
		if len(mailer.sends) != 0 {
			t.Errorf("Expected no send attempt, got %d", len(mailer.sends))
		}
	})

	t.Run("generation error is a failure", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("model unavailable")}
		mailer := &fakeMailer{}
		n := NewNotifier(gen, mailer)

		result := n.Send(context.Background(), TemplatePrintDistributed, approvedParams())
		if result.Success {
			t.Fatal("Expected failure when generation fails")
		}
		if len(mailer.sends) != 0 {
			t.Errorf("Expected no send attempt, got %d", len(mailer.sends))
		}
	})

	t.Run("transport rejection is a failure", func(t *testing.T) {
		gen := &fakeGenerator{output: "body"}
		mailer := &fakeMailer{err: errors.New("connection refused")}
		n := NewNotifier(gen, mailer)

		result := n.Send(context.Background(), TemplatePaymentApproved, approvedParams())
		if result.Success {
			t.Fatal("Expected failure when transport rejects")
		}
		if result.Message != "Failed to send email." {
			t.Errorf("Unexpected failure message: %s", result.Message)
		}
		// Exactly one attempt was made; the dispatcher never retries.
		if len(mailer.sends) != 1 {
			t.Errorf("Expected exactly one send attempt, got %d", len(mailer.sends))
		}
	})

	t.Run("unknown template kind", func(t *testing.T) {
		gen := &fakeGenerator{output: "body"}
		mailer := &fakeMailer{}
		n := NewNotifier(gen, mailer)

		result := n.Send(context.Background(), TemplateKind("payment_rejected"), approvedParams())
		if result.Success {
			t.Fatal("Expected failure for unknown template kind")
		}
		if len(gen.prompts) != 0 || len(mailer.sends) != 0 {
			t.Error("Expected no generation or send for unknown kind")
		}
	})
}

func TestBuildTemplate_Subjects(t *testing.T) {
	cases := []struct {
		kind    TemplateKind
		subject string
	}{
		{TemplatePaymentSubmitted, `Your payment for "Annual Day" has been submitted`},
		{TemplatePaymentApproved, `Your payment for "Annual Day" has been approved!`},
		{TemplatePrintDistributed, `Your print for "Annual Day" has been distributed!`},
		{TemplatePaymentReminder, `Reminder: payment for "Annual Day" is due soon`},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			_, subject, err := buildTemplate(tc.kind, approvedParams())
			if err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
			if subject != tc.subject {
				t.Errorf("Expected subject %q, got %q", tc.subject, subject)
			}
		})
	}
}

func TestSMTPMailer_Unconfigured(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.gmail.com", Port: 587})
	if err := m.Send("a@example.com", "s", "b"); err == nil {
		t.Fatal("Expected error when SMTP credentials are missing")
	}
}
