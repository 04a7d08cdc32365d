package hxregion

import (
	"github.com/pthm/hxregion/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeLayout encodes l into a URL-safe token, so a request can carry the
// regions a page was built with. Sensitive layouts are encrypted rather
// than signed.
func EncodeLayout(enc *Encoder, l Layout, sensitive bool) (string, error) {
	token, err := enc.Encode(l, sensitive)
	return token, wrapEncodingError(err)
}

// DecodeLayout reverses EncodeLayout.
func DecodeLayout(enc *Encoder, token string, sensitive bool) (Layout, error) {
	var l Layout
	if err := enc.Decode(token, sensitive, &l); err != nil {
		return nil, wrapEncodingError(err)
	}
	return l, nil
}
