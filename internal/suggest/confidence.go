package suggest

import (
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/foundation/normalization"
)

// Confidence ranks how trustworthy a suggestion is. The zero value means no
// suggestion; higher values are more trustworthy.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

var confidenceNormalizer = normalization.NewNormalizer(map[string]Confidence{
	"none":   ConfidenceNone,
	"low":    ConfidenceLow,
	"medium": ConfidenceMedium,
	"high":   ConfidenceHigh,
}, ConfidenceNone)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ParseConfidence parses "high", "medium", "low" or "none", case-insensitively.
func ParseConfidence(s string) (Confidence, error) {
	c, err := confidenceNormalizer.Parse(s)
	if err != nil {
		return ConfidenceNone, errors.ValidationError("invalid confidence").Wrap(err).Build()
	}
	return c, nil
}

// AtLeast reports whether c is at or above min.
func (c Confidence) AtLeast(minimum Confidence) bool {
	return c >= minimum
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Confidence) UnmarshalText(text []byte) error {
	parsed, err := ParseConfidence(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
