package models

import (
	"testing"
	"time"
)

func sampleEvent(cost float64, methods ...PaymentMethod) *Event {
	return &Event{
		ID:             "evt-1",
		Scope:          "class-a",
		Name:           "Annual Day",
		Cost:           cost,
		Deadline:       time.Now().Add(72 * time.Hour),
		Category:       CategoryNormal,
		PaymentOptions: methods,
		QRCodeURL:      "https://bucket.s3.ap-south-1.amazonaws.com/qrcodes/pay.png",
	}
}

func sampleStudent() *Student {
	return &Student{
		ID:     "stu-1",
		Scope:  "class-a",
		RollNo: "42",
		Name:   "Asha Verma",
		Email:  "asha@example.com",
		Class:  "CS-3A",
	}
}

func TestNewPayment_InitialStatus(t *testing.T) {
	cases := []struct {
		method PaymentMethod
		proof  string
		want   PaymentStatus
	}{
		{MethodGateway, "", PaymentPaid},
		{MethodQRCode, "https://bucket.s3.ap-south-1.amazonaws.com/proofs/p.png", PaymentVerificationPending},
		{MethodCash, "", PaymentVerificationPending},
	}

	for _, tc := range cases {
		t.Run(string(tc.method), func(t *testing.T) {
			event := sampleEvent(500, MethodGateway, MethodQRCode, MethodCash)
			p, err := NewPayment(sampleStudent(), event, tc.method, tc.proof)
			if err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
			if p.Status != tc.want {
				t.Errorf("Expected status %q, got %q", tc.want, p.Status)
			}
		})
	}
}

func TestNewPayment_AmountIsSnapshotOfEventCost(t *testing.T) {
	event := sampleEvent(500, MethodQRCode)
	p, err := NewPayment(sampleStudent(), event, MethodQRCode, "https://example.com/proof.png")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if p.Amount != 500 {
		t.Fatalf("Expected amount 500, got %v", p.Amount)
	}

	// Changing the event cost afterwards must not touch the payment.
	event.Cost = 1200
	if p.Amount != 500 {
		t.Errorf("Expected amount to stay 500 after event cost change, got %v", p.Amount)
	}
}

func TestNewPayment_DenormalizedSnapshots(t *testing.T) {
	event := sampleEvent(750, MethodCash)
	student := sampleStudent()
	p, err := NewPayment(student, event, MethodCash, "")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if p.StudentName != "Asha Verma" || p.StudentRoll != "42" {
		t.Errorf("Expected student snapshot on payment, got name=%q roll=%q", p.StudentName, p.StudentRoll)
	}
	if p.EventName != "Annual Day" {
		t.Errorf("Expected event name snapshot, got %q", p.EventName)
	}
	if p.Scope != "class-a" {
		t.Errorf("Expected payment to inherit event scope, got %q", p.Scope)
	}

	// Snapshots are creation-time values: renaming the student later does
	// not propagate.
	student.Name = "A. Verma"
	if p.StudentName != "Asha Verma" {
		t.Errorf("Expected snapshot to stay %q, got %q", "Asha Verma", p.StudentName)
	}
}

func TestNewPayment_TransactionIDIsFresh(t *testing.T) {
	event := sampleEvent(100, MethodGateway)
	p1, err := NewPayment(sampleStudent(), event, MethodGateway, "")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	p2, err := NewPayment(sampleStudent(), event, MethodGateway, "")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if p1.TransactionID == "" || p1.TransactionID == p2.TransactionID {
		t.Errorf("Expected distinct transaction IDs, got %q and %q", p1.TransactionID, p2.TransactionID)
	}
}

func TestNewPayment_Validation(t *testing.T) {
	t.Run("unknown method", func(t *testing.T) {
		_, err := NewPayment(sampleStudent(), sampleEvent(100, MethodCash), PaymentMethod("upi"), "")
		if err != ErrInvalidMethod {
			t.Errorf("Expected ErrInvalidMethod, got %v", err)
		}
	})

	t.Run("method not accepted by event", func(t *testing.T) {
		_, err := NewPayment(sampleStudent(), sampleEvent(100, MethodCash), MethodGateway, "")
		if err != ErrMethodNotAccepted {
			t.Errorf("Expected ErrMethodNotAccepted, got %v", err)
		}
	})

	t.Run("qr payment without proof", func(t *testing.T) {
		_, err := NewPayment(sampleStudent(), sampleEvent(100, MethodQRCode), MethodQRCode, "")
		if err != ErrProofRequired {
			t.Errorf("Expected ErrProofRequired, got %v", err)
		}
	})

	t.Run("proof dropped for non-qr methods", func(t *testing.T) {
		p, err := NewPayment(sampleStudent(), sampleEvent(100, MethodCash), MethodCash, "https://example.com/stray.png")
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if p.ProofURL != "" {
			t.Errorf("Expected empty proof URL for cash payment, got %q", p.ProofURL)
		}
	})
}

func TestPaymentStatus_Terminal(t *testing.T) {
	if !PaymentPaid.Terminal() || !PaymentFailed.Terminal() {
		t.Error("Expected paid and failed to be terminal")
	}
	if PaymentPending.Terminal() || PaymentVerificationPending.Terminal() {
		t.Error("Expected pending and verification_pending to be non-terminal")
	}
}

func TestPaymentStatus_Verifiable(t *testing.T) {
	// Approve and reject are only reachable from verification_pending;
	// every other status refuses the transition.
	cases := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentPending, false},
		{PaymentVerificationPending, true},
		{PaymentPaid, false},
		{PaymentFailed, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			if got := tc.status.Verifiable(); got != tc.want {
				t.Errorf("Expected Verifiable() == %v for %q, got %v", tc.want, tc.status, got)
			}
		})
	}
}

func TestPaymentStatus_Effective(t *testing.T) {
	if PaymentFailed.Effective() {
		t.Error("Expected failed payment to not be effective")
	}
	for _, s := range []PaymentStatus{PaymentPending, PaymentVerificationPending, PaymentPaid} {
		if !s.Effective() {
			t.Errorf("Expected %q to be effective", s)
		}
	}
}

func TestEvent_Accepts(t *testing.T) {
	event := sampleEvent(100, MethodQRCode, MethodCash)
	if !event.Accepts(MethodQRCode) || !event.Accepts(MethodCash) {
		t.Error("Expected event to accept its configured methods")
	}
	if event.Accepts(MethodGateway) {
		t.Error("Expected event to reject gateway")
	}
}
