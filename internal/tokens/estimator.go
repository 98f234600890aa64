// Package tokens estimates tiktoken token counts for fine-tune
// training data, so costs can be sized before uploading anything.
package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/tunewell/finetune-go/internal/jsonl"
)

// Estimator counts tokens for a given base model, caching codecs by
// encoding.
type Estimator struct {
	cache   map[tokenizer.Encoding]tokenizer.Codec
	cacheMu sync.RWMutex
}

func NewEstimator() *Estimator {
	return &Estimator{
		cache: make(map[tokenizer.Encoding]tokenizer.Codec),
	}
}

// Count returns the token count of text under the encoding used by
// the named base model.
func (e *Estimator) Count(model, text string) (int, error) {
	codec, err := e.codec(model)
	if err != nil {
		return 0, err
	}
	ids, _, err := codec.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	return len(ids), nil
}

// CountRecords sums prompt and completion tokens across training
// records.
func (e *Estimator) CountRecords(model string, records []jsonl.Record) (int, error) {
	codec, err := e.codec(model)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, rec := range records {
		ids, _, err := codec.Encode(rec.Prompt)
		if err != nil {
			return 0, fmt.Errorf("encode prompt: %w", err)
		}
		total += len(ids)
		ids, _, err = codec.Encode(rec.Completion)
		if err != nil {
			return 0, fmt.Errorf("encode completion: %w", err)
		}
		total += len(ids)
	}
	return total, nil
}

func (e *Estimator) codec(model string) (tokenizer.Codec, error) {
	encoding := modelToEncoding(model)

	e.cacheMu.RLock()
	if cached, ok := e.cache[encoding]; ok {
		e.cacheMu.RUnlock()
		return cached, nil
	}
	e.cacheMu.RUnlock()

	codec, err := tokenizer.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("get tokenizer encoding: %w", err)
	}

	e.cacheMu.Lock()
	e.cache[encoding] = codec
	e.cacheMu.Unlock()

	return codec, nil
}

// modelToEncoding maps fine-tunable base models to encodings.
//
// Encoding reference:
// - Cl100kBase: gpt-3.5-turbo and gpt-4 family
// - P50kBase: text-davinci-003, text-davinci-002
// - R50kBase: davinci, curie, babbage, ada (the classic fine-tune bases)
func modelToEncoding(model string) tokenizer.Encoding {
	model = strings.ToLower(model)

	switch {
	case strings.HasPrefix(model, "gpt-4"), strings.HasPrefix(model, "gpt-3.5"):
		return tokenizer.Cl100kBase
	case strings.HasPrefix(model, "text-davinci"):
		return tokenizer.P50kBase
	case model == "davinci" || model == "curie" || model == "babbage" || model == "ada":
		return tokenizer.R50kBase
	default:
		return tokenizer.Cl100kBase
	}
}
