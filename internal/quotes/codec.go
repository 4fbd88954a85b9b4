package quotes

import (
	"encoding/json"
	"fmt"
)

// CurrentVersion is written into every saved envelope
const CurrentVersion = 1

// Envelope is the versioned on-disk format of the quote collection
type Envelope struct {
	Version int     `json:"version"`
	Quotes  []Quote `json:"quotes"`
}

// Names of the decode sources reported by Decode
const (
	SourceEnvelope = "envelope"
	SourceLegacy   = "legacy-array"
	SourceSamples  = "samples"
)

// DecodeStrategy is one way of reading a persisted collection. Decode
// reports false when the data is not in this strategy's format.
type DecodeStrategy struct {
	Name   string
	Decode func(data []byte) ([]Quote, bool)
}

// EnvelopeStrategy reads {"version": n, "quotes": [...]}
var EnvelopeStrategy = DecodeStrategy{
	Name: SourceEnvelope,
	Decode: func(data []byte) ([]Quote, bool) {
		var raw struct {
			Version *int     `json:"version"`
			Quotes  *[]Quote `json:"quotes"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, false
		}
		if raw.Version == nil || raw.Quotes == nil {
			return nil, false
		}
		return *raw.Quotes, true
	},
}

// LegacyArrayStrategy reads the pre-versioning bare array of quotes
var LegacyArrayStrategy = DecodeStrategy{
	Name: SourceLegacy,
	Decode: func(data []byte) ([]Quote, bool) {
		var quotes []Quote
		if err := json.Unmarshal(data, &quotes); err != nil {
			return nil, false
		}
		if quotes == nil {
			return nil, false
		}
		return quotes, true
	},
}

// DefaultStrategies returns the strategies in the order they are tried
func DefaultStrategies() []DecodeStrategy {
	return []DecodeStrategy{EnvelopeStrategy, LegacyArrayStrategy}
}

// DecodeResult holds a decoded collection and the strategy that produced it
type DecodeResult struct {
	Quotes []Quote
	Source string
}

// Decode tries each strategy in order and returns the first success. When
// none succeeds the sample collection is returned. Decode never fails.
func Decode(data []byte, strategies ...DecodeStrategy) DecodeResult {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	if len(data) > 0 {
		for _, s := range strategies {
			if quotes, ok := s.Decode(data); ok {
				return DecodeResult{Quotes: quotes, Source: s.Name}
			}
		}
	}

	return DecodeResult{Quotes: SampleQuotes(), Source: SourceSamples}
}

// Encode serializes quotes in the current envelope format
func Encode(quotes []Quote) ([]byte, error) {
	if quotes == nil {
		quotes = []Quote{}
	}
	data, err := json.MarshalIndent(Envelope{Version: CurrentVersion, Quotes: quotes}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotes: %w", err)
	}
	return data, nil
}

// EncodeLegacy serializes quotes as a bare array
func EncodeLegacy(quotes []Quote) ([]byte, error) {
	if quotes == nil {
		quotes = []Quote{}
	}
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotes: %w", err)
	}
	return data, nil
}
