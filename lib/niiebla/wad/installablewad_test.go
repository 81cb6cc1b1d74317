package wad

import (
	"testing"

	"github.com/zelzip/niiebla-go/internal/util"
)

func TestInstallableWadDumpParseRoundTrip(t *testing.T) {
	original := &InstallableWad{
		Kind:                 InstallableWadKindNormal,
		CertificateChainSize: 100,
		TicketSize:           200,
		TitleMetadataSize:    300,
		ContentSize:          400,
		FooterSize:           0,
	}

	s := util.NewMemStream()
	if err := original.Dump(s); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if _, err := s.Seek(0, 0); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	parsed, err := NewInstallable(s)
	if err != nil {
		t.Fatalf("NewInstallable() error = %v", err)
	}

	if parsed.Kind != original.Kind {
		t.Errorf("Kind = %v, want %v", parsed.Kind, original.Kind)
	}
	if parsed.CertificateChainSize != original.CertificateChainSize {
		t.Errorf("CertificateChainSize = %d, want %d", parsed.CertificateChainSize, original.CertificateChainSize)
	}
	if parsed.TicketSize != original.TicketSize {
		t.Errorf("TicketSize = %d, want %d", parsed.TicketSize, original.TicketSize)
	}
	if parsed.TitleMetadataSize != original.TitleMetadataSize {
		t.Errorf("TitleMetadataSize = %d, want %d", parsed.TitleMetadataSize, original.TitleMetadataSize)
	}
	if parsed.ContentSize != original.ContentSize {
		t.Errorf("ContentSize = %d, want %d", parsed.ContentSize, original.ContentSize)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	s := util.NewMemStreamFromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	if _, err := New(s); err == nil {
		t.Fatal("New() expected an error for an unrecognized magic number")
	} else if _, ok := err.(*UnknownWadFormatError); !ok {
		t.Fatalf("New() error = %v, want *UnknownWadFormatError", err)
	}
}

func TestNewRewindsAfterUnmatchedMagicNumber(t *testing.T) {
	// 16 junk bytes: with the stream parked at offset 3, a full 8-byte
	// magic-number read still succeeds, but none of the values match, so
	// New() should reach the rewind-then-report-unknown-format path.
	s := util.NewMemStreamFromBytes(make([]byte, 16))

	if _, err := s.Seek(3, 0); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	if _, err := New(s); err == nil {
		t.Fatal("New() expected an error")
	}

	pos, err := s.Seek(0, 1)
	if err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if pos != 3 {
		t.Errorf("stream position after failed New() = %d, want 3 (rewound)", pos)
	}
}

func TestUnknownInstallableWadKind(t *testing.T) {
	s := util.NewMemStreamFromBytes([]byte("XX"))
	if _, err := parseInstallableWadKind(s); err == nil {
		t.Fatal("parseInstallableWadKind() expected an error for an unknown tag")
	}
}
