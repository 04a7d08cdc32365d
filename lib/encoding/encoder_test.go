package encoding

import (
	"errors"
	"testing"
)

type testEntry struct {
	Target string `msgpack:"t"`
	Type   string `msgpack:"k,omitempty"`
}

type testLayout map[string]testEntry

func sample() testLayout {
	return testLayout{
		"main":    {Target: "#main"},
		"sidebar": {Target: "@ui.side", Type: "card"},
	}
}

func TestNewEncoder(t *testing.T) {
	// Should work with any key length (derives 32-byte key)
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!")); err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-key-is-considerably-longer-than-32-bytes")); err != nil {
		t.Fatalf("NewEncoder with long key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	for _, sensitive := range []bool{false, true} {
		encoded, err := enc.Encode(sample(), sensitive)
		if err != nil {
			t.Fatalf("Encode(sensitive=%v) failed: %v", sensitive, err)
		}

		var decoded testLayout
		if err := enc.Decode(encoded, sensitive, &decoded); err != nil {
			t.Fatalf("Decode(sensitive=%v) failed: %v", sensitive, err)
		}

		if len(decoded) != 2 {
			t.Fatalf("decoded %d entries, want 2", len(decoded))
		}
		if decoded["sidebar"] != (testEntry{Target: "@ui.side", Type: "card"}) {
			t.Errorf("sidebar = %+v", decoded["sidebar"])
		}
		if decoded["main"].Target != "#main" {
			t.Errorf("main target = %q, want %q", decoded["main"].Target, "#main")
		}
	}
}

func TestEncryptedIsOpaque(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	a, err := enc.Encode(sample(), true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	b, err := enc.Encode(sample(), true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if a == b {
		t.Error("encrypted tokens should differ per call (random nonce)")
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(sample(), false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Tamper with the signature
	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded testLayout
	err = enc.Decode(tampered, false, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Expected ErrSignatureInvalid, got: %v", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(sample(), true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded testLayout
	if err := enc.Decode(tampered, true, &decoded); err == nil {
		t.Error("Expected error for tampered ciphertext, got nil")
	}

	if err := enc.Decode("AAAA", true, &decoded); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed for short ciphertext, got: %v", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	var decoded testLayout
	err := enc.Decode("invalidbase64withoutseparator", false, &decoded)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got: %v", err)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	encoded, err := enc1.Encode(sample(), false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded testLayout
	if err := enc2.Decode(encoded, false, &decoded); err == nil {
		t.Error("Expected error when decoding with different key")
	}
}

func TestEmptyValue(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testLayout{}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded testLayout
	if err := enc.Decode(encoded, false, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded %d entries, want 0", len(decoded))
	}
}
