package config

import (
	"encoding/json"
	"log/slog"
)

const redacted = "[REDACTED]"

// Secret holds a credential. Every formatting path prints a redaction
// marker; only Reveal returns the raw value.
type Secret struct {
	value string
}

func (s Secret) Reveal() string { return s.value }

func (s Secret) String() string { return redacted }

func (s Secret) GoString() string { return redacted }

func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

func NewSecret(value string) Secret {
	return Secret{value: value}
}
