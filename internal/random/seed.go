// Package random provides the entropy sources used by the pebbles engine.
//
// The engine consumes 32-bit draws through Source; production code reads them
// from crypto/rand and tests substitute fixed sequences.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// Source yields uniformly distributed 32-bit values.
type Source interface {
	Uint32() (uint32, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (uint32, error)

// Uint32 implements Source.
func (fn SourceFunc) Uint32() (uint32, error) {
	return fn()
}

// CryptoSource draws values from a cryptographic reader.
type CryptoSource struct {
	reader io.Reader
}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{reader: crand.Reader}
}

// NewReaderSource returns a Source backed by reader.
func NewReaderSource(reader io.Reader) *CryptoSource {
	return &CryptoSource{reader: reader}
}

// Uint32 reads four bytes and decodes them little-endian.
func (s *CryptoSource) Uint32() (uint32, error) {
	reader := s.reader
	if reader == nil {
		reader = crand.Reader
	}
	var b [4]byte
	if _, err := io.ReadFull(reader, b[:]); err != nil {
		return 0, fmt.Errorf("read random value: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
