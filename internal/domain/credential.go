package domain

import (
	"encoding/json"

	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// Credential is an SEC API key. Every printable form is redacted;
// call Reveal only when building the outgoing request.
type Credential struct {
	key string
}

// NewCredential wraps a raw API key.
func NewCredential(key string) Credential {
	return Credential{key: key}
}

// ResolveCredential returns explicit when set, otherwise fallback.
func ResolveCredential(explicit, fallback string) Credential {
	if explicit != "" {
		return NewCredential(explicit)
	}
	return NewCredential(fallback)
}

// Empty reports whether no key is set.
func (c Credential) Empty() bool { return c.key == "" }

// Reveal returns the raw key.
func (c Credential) Reveal() string { return c.key }

func (c Credential) String() string {
	if c.Empty() {
		return ""
	}
	return redacted
}

// GoString keeps %#v from printing the key.
func (c Credential) GoString() string { return c.String() }

// MarshalJSON implements json.Marshaler.
func (c Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c Credential) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("set", !c.Empty())
	return nil
}
