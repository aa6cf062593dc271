package random

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderSourceDecodesLittleEndian(t *testing.T) {
	source := NewReaderSource(bytes.NewReader([]byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}))

	first, err := source.Uint32()
	if err != nil {
		t.Fatalf("first draw: %v", err)
	}
	if first != 1 {
		t.Fatalf("first = %d, want 1", first)
	}
	second, err := source.Uint32()
	if err != nil {
		t.Fatalf("second draw: %v", err)
	}
	if second != 0xffffffff {
		t.Fatalf("second = %d, want %d", second, uint32(0xffffffff))
	}
}

func TestReaderSourceShortRead(t *testing.T) {
	source := NewReaderSource(bytes.NewReader([]byte{0x01, 0x02}))
	if _, err := source.Uint32(); err == nil {
		t.Fatal("expected error on short read")
	}
}

func TestCryptoSourceDraws(t *testing.T) {
	source := NewCryptoSource()
	seen := map[uint32]bool{}
	for i := 0; i < 8; i++ {
		value, err := source.Uint32()
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		seen[value] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varying draws from crypto source")
	}

	var zero CryptoSource
	if _, err := zero.Uint32(); err != nil {
		t.Fatalf("zero value draw: %v", err)
	}
}

func TestSourceFunc(t *testing.T) {
	boom := errors.New("boom")
	fn := SourceFunc(func() (uint32, error) { return 0, boom })
	if _, err := fn.Uint32(); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
