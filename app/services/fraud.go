package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// FraudInput bundles the free-text descriptions the model analyzes.
type FraudInput struct {
	PaymentData       string `json:"payment_data"`
	StudentInfo       string `json:"student_info"`
	EventDetails      string `json:"event_details"`
	ScreenshotDataURI string `json:"screenshot_data_uri,omitempty"`
}

// FraudVerdict is the model's guess at fraud likelihood.
type FraudVerdict struct {
	IsFraudulent     bool   `json:"is_fraudulent"`
	FraudExplanation string `json:"fraud_explanation"`
}

// MultimodalGenerator produces prose from a prompt and an optional image.
type MultimodalGenerator interface {
	GenerateWithImage(ctx context.Context, prompt, imageDataURI string) (string, error)
}

// FraudChecker runs a single-shot analysis of a payment's textual description
// and optional screenshot. No chaining, caching, or validation beyond parsing
// the model's JSON verdict.
type FraudChecker struct {
	gen MultimodalGenerator
}

// NewFraudChecker wires a checker over the generation collaborator.
func NewFraudChecker(gen MultimodalGenerator) *FraudChecker {
	return &FraudChecker{gen: gen}
}

// Check asks the model for a fraud verdict on the given payment.
func (f *FraudChecker) Check(ctx context.Context, input FraudInput) (*FraudVerdict, error) {
	screenshotNote := "No screenshot provided"
	if input.ScreenshotDataURI != "" {
		screenshotNote = "A screenshot of the payment is attached"
	}

	prompt := fmt.Sprintf(`You are an AI assistant specializing in detecting fraudulent payment activities.

Analyze the provided payment data, student information, and event details to determine if the payment is potentially fraudulent.
Consider factors such as unusual payment amounts, discrepancies between the payment data and student information, and suspicious screenshot uploads.

Provide a detailed explanation for your determination.

Payment Data: %s
Student Info: %s
Event Details: %s
Screenshot: %s

Based on this information, determine if the payment is fraudulent and provide a detailed explanation.
Respond with JSON only, in the form {"isFraudulent": <bool>, "fraudExplanation": "<string>"}.
Set the isFraudulent field to true if you detect fraud, otherwise, set it to false.`,
		input.PaymentData, input.StudentInfo, input.EventDetails, screenshotNote)

	out, err := f.gen.GenerateWithImage(ctx, prompt, input.ScreenshotDataURI)
	if err != nil {
		return nil, err
	}

	verdict, err := parseFraudVerdict(out)
	if err != nil {
		return nil, err
	}
	return verdict, nil
}

// parseFraudVerdict decodes the model output, tolerating markdown code
// fences around the JSON.
func parseFraudVerdict(out string) (*FraudVerdict, error) {
	cleaned := strings.TrimSpace(out)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var raw struct {
		IsFraudulent     bool   `json:"isFraudulent"`
		FraudExplanation string `json:"fraudExplanation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fraud verdict: %w", err)
	}
	return &FraudVerdict{IsFraudulent: raw.IsFraudulent, FraudExplanation: raw.FraudExplanation}, nil
}
