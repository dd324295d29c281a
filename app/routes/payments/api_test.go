package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/services"
)

type fakeGenerator struct {
	output string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.output, nil
}

type fakeMailer struct {
	sends []sentMail
}

type sentMail struct {
	to      string
	subject string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.sends = append(f.sends, sentMail{to: to, subject: subject})
	return nil
}

func TestTransitionNotice(t *testing.T) {
	t.Run("approval notifies the student", func(t *testing.T) {
		kind, ok := transitionNotice(models.PaymentPaid)
		if !ok {
			t.Fatal("Expected an email to follow an approval")
		}
		if kind != services.TemplatePaymentApproved {
			t.Errorf("Expected %q, got %q", services.TemplatePaymentApproved, kind)
		}
	})

	t.Run("rejection is silent", func(t *testing.T) {
		if _, ok := transitionNotice(models.PaymentFailed); ok {
			t.Error("Expected no email to follow a rejection")
		}
	})
}

func TestDispatch_SendsExactlyOneEmail(t *testing.T) {
	mailer := &fakeMailer{}
	notifier = services.NewNotifier(&fakeGenerator{output: "Dear Asha,\nyour payment is approved."}, mailer)
	t.Cleanup(func() { notifier = nil })

	dispatch(services.TemplatePaymentApproved, services.TemplateParams{
		StudentName:  "Asha Verma",
		StudentEmail: "asha@example.com",
		EventName:    "Annual Day",
		Amount:       500,
	})

	if len(mailer.sends) != 1 {
		t.Fatalf("Expected exactly one send, got %d", len(mailer.sends))
	}
	sent := mailer.sends[0]
	if sent.to != "asha@example.com" {
		t.Errorf("Expected recipient asha@example.com, got %s", sent.to)
	}
	if !strings.Contains(sent.subject, "approved") {
		t.Errorf("Expected approval subject, got %q", sent.subject)
	}
}
