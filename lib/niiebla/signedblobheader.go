// Package niiebla implements the binary container formats used by Nintendo
// to sign, certify, license, and package content for the Wii, DSi, 3DS and
// Wii U: signed-blob headers, certificate chains, tickets, title metadata,
// and the Installable WAD envelope that bundles them together.
package niiebla

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// SignedBlobHeader is the blob placed at the start of some binary data to
// denote the entity that issued them.
type SignedBlobHeader struct {
	// Signature of the blob.
	Signature SignedBlobHeaderSignature

	// Issuer of the signature.
	Issuer string
}

// UnknownSignatureKindError is returned when a signed blob header's
// signature tag does not match any known kind.
type UnknownSignatureKindError struct {
	Kind uint32
}

func (e *UnknownSignatureKindError) Error() string {
	return fmt.Sprintf("unknown signature kind: %#X", e.Kind)
}

// ParseSignedBlobHeader parses a SignedBlobHeader from s.
func ParseSignedBlobHeader(s io.ReadWriteSeeker) (*SignedBlobHeader, error) {
	pin, err := stream.NewPin(s)
	if err != nil {
		return nil, err
	}

	signature, err := parseSignedBlobHeaderSignature(pin)
	if err != nil {
		return nil, err
	}

	if err := pin.AlignPosition(64); err != nil {
		return nil, err
	}

	issuer, err := stream.ReadNullTerminatedString(pin, 64)
	if err != nil {
		return nil, err
	}

	return &SignedBlobHeader{Signature: signature, Issuer: issuer}, nil
}

// Serialize writes the header to s.
func (h *SignedBlobHeader) Serialize(s io.ReadWriteSeeker) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	if err := h.Signature.serialize(pin); err != nil {
		return err
	}

	if err := pin.AlignZeroed(64); err != nil {
		return err
	}

	return stream.WriteStringPadded(pin, h.Issuer, 64)
}

// Size returns the size of the header in bytes, including the 64-byte
// alignment padding after the signature and the fixed 68-byte tag+issuer
// tail.
func (h *SignedBlobHeader) Size() uint32 {
	var signatureSize uint64
	switch h.Signature.(type) {
	case *SignatureRSA4096SHA1, *SignatureRSA4096SHA256:
		signatureSize = 512
	case *SignatureRSA2048SHA1, *SignatureRSA2048SHA256:
		signatureSize = 256
	case *SignatureECDSASHA1, *SignatureECDSASHA256:
		signatureSize = 60
	case *SignatureHMACSHA1:
		signatureSize = 20
	}

	return uint32(stream.AlignToBoundary(signatureSize+68, 64))
}

// SignedBlobHeaderSignature is a signature in one of the cryptography
// formats Nintendo uses to sign binary blobs.
type SignedBlobHeaderSignature interface {
	isSignedBlobHeaderSignature()
	serialize(w io.Writer) error
}

// SignatureRSA4096SHA1 is an RSA-4096 PKCS#1 v1.5 signature with SHA-1.
type SignatureRSA4096SHA1 struct{ Data [512]byte }

// SignatureRSA2048SHA1 is an RSA-2048 PKCS#1 v1.5 signature with SHA-1.
type SignatureRSA2048SHA1 struct{ Data [256]byte }

// SignatureECDSASHA1 is an ECDSA signature with SHA-1.
type SignatureECDSASHA1 struct{ Data [60]byte }

// SignatureRSA4096SHA256 is an RSA-4096 PKCS#1 v1.5 signature with SHA-256.
type SignatureRSA4096SHA256 struct{ Data [512]byte }

// SignatureRSA2048SHA256 is an RSA-2048 PKCS#1 v1.5 signature with SHA-256.
type SignatureRSA2048SHA256 struct{ Data [256]byte }

// SignatureECDSASHA256 is an ECDSA signature with SHA-256.
type SignatureECDSASHA256 struct{ Data [60]byte }

// SignatureHMACSHA1 is an HMAC-SHA1-160 signature.
type SignatureHMACSHA1 struct{ Data [20]byte }

func (*SignatureRSA4096SHA1) isSignedBlobHeaderSignature()   {}
func (*SignatureRSA2048SHA1) isSignedBlobHeaderSignature()   {}
func (*SignatureECDSASHA1) isSignedBlobHeaderSignature()     {}
func (*SignatureRSA4096SHA256) isSignedBlobHeaderSignature() {}
func (*SignatureRSA2048SHA256) isSignedBlobHeaderSignature() {}
func (*SignatureECDSASHA256) isSignedBlobHeaderSignature()   {}
func (*SignatureHMACSHA1) isSignedBlobHeaderSignature()      {}

const (
	signatureKindRSA4096SHA1   uint32 = 0x010000
	signatureKindRSA2048SHA1   uint32 = 0x010001
	signatureKindECDSASHA1     uint32 = 0x010002
	signatureKindRSA4096SHA256 uint32 = 0x010003
	signatureKindRSA2048SHA256 uint32 = 0x010004
	signatureKindECDSASHA256   uint32 = 0x010005
	signatureKindHMACSHA1      uint32 = 0x010006
)

func parseSignedBlobHeaderSignature(r io.Reader) (SignedBlobHeaderSignature, error) {
	kind, err := stream.ReadU32(r)
	if err != nil {
		return nil, err
	}

	switch kind {
	case signatureKindRSA4096SHA1:
		var s SignatureRSA4096SHA1
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	case signatureKindRSA2048SHA1:
		var s SignatureRSA2048SHA1
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	case signatureKindECDSASHA1:
		var s SignatureECDSASHA1
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	case signatureKindRSA4096SHA256:
		var s SignatureRSA4096SHA256
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	case signatureKindRSA2048SHA256:
		var s SignatureRSA2048SHA256
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	case signatureKindECDSASHA256:
		var s SignatureECDSASHA256
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	case signatureKindHMACSHA1:
		var s SignatureHMACSHA1
		if err := stream.ReadExactly(r, s.Data[:]); err != nil {
			return nil, err
		}
		return &s, nil

	default:
		return nil, &UnknownSignatureKindError{Kind: kind}
	}
}

func (s *SignatureRSA4096SHA1) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindRSA4096SHA1); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}

func (s *SignatureRSA2048SHA1) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindRSA2048SHA1); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}

func (s *SignatureECDSASHA1) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindECDSASHA1); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}

func (s *SignatureRSA4096SHA256) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindRSA4096SHA256); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}

func (s *SignatureRSA2048SHA256) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindRSA2048SHA256); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}

func (s *SignatureECDSASHA256) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindECDSASHA256); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}

func (s *SignatureHMACSHA1) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, signatureKindHMACSHA1); err != nil {
		return err
	}
	_, err := w.Write(s.Data[:])
	return err
}
