package hxregion

import (
	"errors"

	"github.com/pthm/hxregion/lib/encoding"
)

// Sentinel errors for region operations.
var (
	ErrRegionNotFound    = errors.New("hxregion: region not found")
	ErrInvalidDefinition = errors.New("hxregion: invalid region definition")
	ErrMissingElement    = errors.New("hxregion: region has no element")
	ErrUnknownType       = errors.New("hxregion: unknown region type")
	ErrRegionDestroyed   = errors.New("hxregion: region destroyed")
	ErrInvalidFormat     = errors.New("hxregion: invalid layout format")
	ErrSignatureInvalid  = errors.New("hxregion: signature verification failed")
	ErrDecryptFailed     = errors.New("hxregion: layout decryption failed")
)

// IsNotFound checks if err is a region-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRegionNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// wrapEncodingError maps encoding package errors onto hxregion sentinels.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	}
	return err
}
