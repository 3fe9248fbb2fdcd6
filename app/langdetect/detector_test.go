package langdetect

import (
	"sync"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Hello World", "hello world"},
		{"strips urls", "read more at https://example.com/a?b=1 now", "read more at  now"},
		{"strips punctuation", "breaking: news, today!", "breaking news today"},
		{"keeps non-latin letters", "Das ist schön", "das ist schön"},
		{"keeps digits and underscores", "top_10 stories", "top_10 stories"},
		{"blank input", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetector_Run_EmptyInput(t *testing.T) {
	detector := NewDetector()

	code, confidence := detector.Run("")
	if code != "" || confidence != 0.0 {
		t.Errorf("Expected empty result for empty input, got (%q, %f)", code, confidence)
	}

	// Punctuation-only input cleans to nothing and skips the model.
	code, confidence = detector.Run("!!! ... ???")
	if code != "" || confidence != 0.0 {
		t.Errorf("Expected empty result for punctuation-only input, got (%q, %f)", code, confidence)
	}
}

func TestDetector_Run_English(t *testing.T) {
	detector := NewDetector()

	code, confidence := detector.Run("The government announced a new climate policy for renewable energy production this week")
	if code != "en" {
		t.Errorf("Expected 'en', got %q (confidence %f)", code, confidence)
	}
	if confidence < DefaultMinConfidence {
		t.Errorf("Expected confidence of at least %f, got %f", DefaultMinConfidence, confidence)
	}
}

func TestDetector_ConcurrentFirstUse(t *testing.T) {
	detector := NewDetector()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = detector.Run("the weather forecast for tomorrow promises sunshine across the entire region")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Errorf("Concurrent detections disagree: %q vs %q", results[0], results[i])
		}
	}
}

func TestDetector_Run_ShortText(t *testing.T) {
	detector := NewDetector()

	// Short input is repeated internally; the result must still be a
	// plain lowercase two-letter code.
	code, _ := detector.Run("good morning everyone")
	if code != "" && len(code) != 2 {
		t.Errorf("Expected empty or two-letter code, got %q", code)
	}
}
