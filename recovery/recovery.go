// Package recovery offers opt-in lenient helpers for callers that prefer a
// degraded result over a hard failure. None of the codecs call into it.
package recovery

import (
	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/validation"
)

// CleanQ64 strips every byte that is not a Q64 symbol and drops a trailing
// odd character. It returns an EmptyInput error if nothing is left.
//
// Cleaning does not restore position alignment; the result may still fail
// to decode if symbols were lost from the middle of the string.
func CleanQ64(s string) (string, error) {
	cleaned := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if q64.IsSymbol(s[i]) {
			cleaned = append(cleaned, s[i])
		}
	}
	if len(cleaned)&1 != 0 {
		cleaned = cleaned[:len(cleaned)-1]
	}
	if len(cleaned) == 0 {
		return "", errs.EmptyInput("q64 decode recovery")
	}
	return string(cleaned), nil
}

// DecodeLenient cleans s with CleanQ64 and decodes the result.
func DecodeLenient(s string) ([]byte, error) {
	cleaned, err := CleanQ64(s)
	if err != nil {
		return nil, err
	}
	return q64.Decode(cleaned)
}

// ClampK limits k to [1, min(embeddingSize, validation.MaxK)].
func ClampK(k, embeddingSize int) int {
	return max(1, min(k, embeddingSize, validation.MaxK))
}

// ClampPlanes limits planes to [1, validation.MaxSimHashPlanes].
func ClampPlanes(planes int) int {
	return max(1, min(planes, validation.MaxSimHashPlanes))
}
