package tokens

import (
	"testing"

	"github.com/tiktoken-go/tokenizer"

	"github.com/tunewell/finetune-go/internal/jsonl"
)

func TestCount(t *testing.T) {
	e := NewEstimator()

	n, err := e.Count("curie", "The quick brown fox jumps over the lazy dog")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n == 0 {
		t.Error("Count() = 0, want > 0")
	}
}

func TestCountRecords(t *testing.T) {
	e := NewEstimator()

	records := []jsonl.Record{
		{Prompt: "hello ->", Completion: " world"},
		{Prompt: "goodbye ->", Completion: " moon"},
	}
	total, err := e.CountRecords("davinci", records)
	if err != nil {
		t.Fatalf("CountRecords() error = %v", err)
	}

	// Sum of individual counts must match the batch count.
	want := 0
	for _, rec := range records {
		n, err := e.Count("davinci", rec.Prompt)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		want += n
		n, err = e.Count("davinci", rec.Completion)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		want += n
	}
	if total != want {
		t.Errorf("CountRecords() = %d, want %d", total, want)
	}
}

func TestModelToEncoding(t *testing.T) {
	cases := []struct {
		model string
		want  tokenizer.Encoding
	}{
		{"gpt-3.5-turbo", tokenizer.Cl100kBase},
		{"gpt-4", tokenizer.Cl100kBase},
		{"text-davinci-003", tokenizer.P50kBase},
		{"curie", tokenizer.R50kBase},
		{"ada", tokenizer.R50kBase},
		{"unknown-model", tokenizer.Cl100kBase},
	}
	for _, tc := range cases {
		if got := modelToEncoding(tc.model); got != tc.want {
			t.Errorf("modelToEncoding(%q) = %v, want %v", tc.model, got, tc.want)
		}
	}
}
