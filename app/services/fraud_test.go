package services

import (
	"context"
	"strings"
	"testing"
)

type fakeMultimodal struct {
	output    string
	prompts   []string
	imageURIs []string
}

func (f *fakeMultimodal) GenerateWithImage(ctx context.Context, prompt, imageDataURI string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.imageURIs = append(f.imageURIs, imageDataURI)
	return f.output, nil
}

func TestFraudChecker_Check(t *testing.T) {
	input := FraudInput{
		PaymentData:  "Transaction ID: abc-123, Amount: 500.00",
		StudentInfo:  "Roll: 42, Name: Asha Verma",
		EventDetails: "Name: Annual Day, Cost: 500.00",
	}

	t.Run("parses a clean verdict", func(t *testing.T) {
		gen := &fakeMultimodal{output: `{"isFraudulent": false, "fraudExplanation": "Amount matches event cost."}`}
		checker := NewFraudChecker(gen)

		verdict, err := checker.Check(context.Background(), input)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if verdict.IsFraudulent {
			t.Error("Expected non-fraudulent verdict")
		}
		if verdict.FraudExplanation != "Amount matches event cost." {
			t.Errorf("Unexpected explanation: %s", verdict.FraudExplanation)
		}
	})

	t.Run("prompt carries the inputs and screenshot note", func(t *testing.T) {
		gen := &fakeMultimodal{output: `{"isFraudulent": true, "fraudExplanation": "x"}`}
		checker := NewFraudChecker(gen)

		if _, err := checker.Check(context.Background(), input); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		prompt := gen.prompts[0]
		for _, want := range []string{"abc-123", "Asha Verma", "Annual Day", "No screenshot provided"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("Expected prompt to contain %q", want)
			}
		}
		if gen.imageURIs[0] != "" {
			t.Errorf("Expected no image passed, got %q", gen.imageURIs[0])
		}
	})

	t.Run("screenshot is forwarded to the model", func(t *testing.T) {
		gen := &fakeMultimodal{output: `{"isFraudulent": false, "fraudExplanation": "ok"}`}
		checker := NewFraudChecker(gen)

		withShot := input
		withShot.ScreenshotDataURI = "data:image/png;base64,aGVsbG8="
		if _, err := checker.Check(context.Background(), withShot); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if gen.imageURIs[0] != withShot.ScreenshotDataURI {
			t.Error("Expected screenshot data URI forwarded to generator")
		}
		if !strings.Contains(gen.prompts[0], "A screenshot of the payment is attached") {
			t.Error("Expected prompt to note the attached screenshot")
		}
	})
}

func TestParseFraudVerdict(t *testing.T) {
	t.Run("fenced json", func(t *testing.T) {
		out := "```json\n{\"isFraudulent\": true, \"fraudExplanation\": \"Duplicate transaction id.\"}\n```"
		verdict, err := parseFraudVerdict(out)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if !verdict.IsFraudulent {
			t.Error("Expected fraudulent verdict")
		}
		if verdict.FraudExplanation != "Duplicate transaction id." {
			t.Errorf("Unexpected explanation: %s", verdict.FraudExplanation)
		}
	})

	t.Run("bare fence", func(t *testing.T) {
		out := "```\n{\"isFraudulent\": false, \"fraudExplanation\": \"ok\"}\n```"
		verdict, err := parseFraudVerdict(out)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if verdict.IsFraudulent {
			t.Error("Expected non-fraudulent verdict")
		}
	})

	t.Run("non-json output", func(t *testing.T) {
		if _, err := parseFraudVerdict("I think this looks fine."); err == nil {
			t.Fatal("Expected parse error for prose output")
		}
	})
}

func TestParseDataURI(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		inline, err := parseDataURI("data:image/png;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if inline.MimeType != "image/png" {
			t.Errorf("Expected mime image/png, got %s", inline.MimeType)
		}
		if inline.Data != "aGVsbG8=" {
			t.Errorf("Unexpected payload: %s", inline.Data)
		}
	})

	t.Run("missing base64 marker", func(t *testing.T) {
		if _, err := parseDataURI("data:image/png,rawbytes"); err == nil {
			t.Fatal("Expected error for non-base64 data URI")
		}
	})

	t.Run("not a data uri", func(t *testing.T) {
		if _, err := parseDataURI("https://example.com/shot.png"); err == nil {
			t.Fatal("Expected error for plain URL")
		}
	})

	t.Run("invalid base64", func(t *testing.T) {
		if _, err := parseDataURI("data:image/png;base64,???"); err == nil {
			t.Fatal("Expected error for invalid base64 payload")
		}
	})
}
