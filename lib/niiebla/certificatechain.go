package niiebla

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// CertificateChain is a sequence of certificates, each one certifying the
// identity of the next, terminating in a certificate whose signature is
// verified against an offline root key.
type CertificateChain struct {
	Certificates []*Certificate
}

// UnknownKeyKindError is returned when a certificate's public key tag does
// not match any known CertificateKeyValue kind.
type UnknownKeyKindError struct {
	Kind uint32
}

func (e *UnknownKeyKindError) Error() string {
	return fmt.Sprintf("unknown key kind: %#X", e.Kind)
}

// ParseCertificateChain parses numberOfCertificates consecutive,
// 64-byte-aligned certificates from s.
func ParseCertificateChain(s io.ReadWriteSeeker, numberOfCertificates int) (*CertificateChain, error) {
	pin, err := stream.NewPin(s)
	if err != nil {
		return nil, err
	}

	certificates := make([]*Certificate, 0, numberOfCertificates)
	for i := 0; i < numberOfCertificates; i++ {
		cert, err := ParseCertificate(pin)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, cert)

		if err := pin.AlignPosition(64); err != nil {
			return nil, err
		}
	}

	return &CertificateChain{Certificates: certificates}, nil
}

// Serialize writes the certificate chain to s.
func (c *CertificateChain) Serialize(s io.ReadWriteSeeker) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	for _, cert := range c.Certificates {
		if err := cert.Serialize(pin); err != nil {
			return err
		}
		if err := pin.AlignZeroed(64); err != nil {
			return err
		}
	}

	return nil
}

// Size returns the total size in bytes of the certificate chain.
func (c *CertificateChain) Size() uint32 {
	var total uint32
	for _, cert := range c.Certificates {
		total += cert.Size()
	}
	return total
}

// Certificate binds an identity to a public key, itself authenticated by a
// signed blob header.
type Certificate struct {
	// SignedBlobHeader proves this certificate was created by an
	// authorized entity.
	SignedBlobHeader *SignedBlobHeader

	// Identity is the name of the certificate.
	Identity string

	// Key is the public key stored inside the certificate.
	Key CertificateKey
}

// ParseCertificate parses a single certificate from s.
func ParseCertificate(s io.ReadWriteSeeker) (*Certificate, error) {
	header, err := ParseSignedBlobHeader(s)
	if err != nil {
		return nil, err
	}

	keyValueKind, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}

	identity, err := stream.ReadNullTerminatedString(s, 64)
	if err != nil {
		return nil, err
	}

	id, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}

	value, err := parseCertificateKeyValue(keyValueKind, s)
	if err != nil {
		return nil, err
	}

	return &Certificate{
		SignedBlobHeader: header,
		Identity:         identity,
		Key:              CertificateKey{ID: id, Value: value},
	}, nil
}

// Serialize writes the certificate to s.
func (c *Certificate) Serialize(s io.ReadWriteSeeker) error {
	if err := c.SignedBlobHeader.Serialize(s); err != nil {
		return err
	}

	if err := c.Key.Value.dumpKindIdentifier(s); err != nil {
		return err
	}

	if err := stream.WriteStringPadded(s, c.Identity, 64); err != nil {
		return err
	}

	if err := stream.WriteU32(s, c.Key.ID); err != nil {
		return err
	}

	return c.Key.Value.dumpValue(s)
}

// Size returns the size in bytes of the certificate, 64-byte aligned.
func (c *Certificate) Size() uint32 {
	size := uint64(c.Key.Value.size()) + uint64(c.SignedBlobHeader.Size()) + 72
	return uint32(stream.AlignToBoundary(size, 64))
}

// CertificateKey is the public key stored inside a certificate.
type CertificateKey struct {
	// ID of the certificate.
	ID uint32

	// Value is the public key data itself.
	Value CertificateKeyValue
}

// CertificateKeyValue is the public key data stored inside a certificate,
// in one of the formats Nintendo's certificate chains use.
type CertificateKeyValue interface {
	size() uint32
	dumpKindIdentifier(w io.Writer) error
	dumpValue(w io.Writer) error
}

// CertificateKeyRSA4096 stores the key as RSA-4096 data.
type CertificateKeyRSA4096 struct{ Data [512 + 4]byte }

// CertificateKeyRSA2048 stores the key as RSA-2048 data.
type CertificateKeyRSA2048 struct{ Data [256 + 4]byte }

// CertificateKeyECCB223 stores the key as ECC-B223 data.
type CertificateKeyECCB223 struct{ Data [60]byte }

const (
	certificateKeyKindRSA4096 uint32 = 0
	certificateKeyKindRSA2048 uint32 = 1
	certificateKeyKindECCB223 uint32 = 2
)

func parseCertificateKeyValue(kind uint32, r io.Reader) (CertificateKeyValue, error) {
	switch kind {
	case certificateKeyKindRSA4096:
		var v CertificateKeyRSA4096
		if err := stream.ReadExactly(r, v.Data[:]); err != nil {
			return nil, err
		}
		return &v, nil

	case certificateKeyKindRSA2048:
		var v CertificateKeyRSA2048
		if err := stream.ReadExactly(r, v.Data[:]); err != nil {
			return nil, err
		}
		return &v, nil

	case certificateKeyKindECCB223:
		var v CertificateKeyECCB223
		if err := stream.ReadExactly(r, v.Data[:]); err != nil {
			return nil, err
		}
		return &v, nil

	default:
		return nil, &UnknownKeyKindError{Kind: kind}
	}
}

func (v *CertificateKeyRSA4096) size() uint32 { return 512 + 4 }
func (v *CertificateKeyRSA2048) size() uint32 { return 256 + 4 }
func (v *CertificateKeyECCB223) size() uint32 { return 60 }

func (v *CertificateKeyRSA4096) dumpKindIdentifier(w io.Writer) error {
	return stream.WriteU32(w, certificateKeyKindRSA4096)
}
func (v *CertificateKeyRSA2048) dumpKindIdentifier(w io.Writer) error {
	return stream.WriteU32(w, certificateKeyKindRSA2048)
}
func (v *CertificateKeyECCB223) dumpKindIdentifier(w io.Writer) error {
	return stream.WriteU32(w, certificateKeyKindECCB223)
}

func (v *CertificateKeyRSA4096) dumpValue(w io.Writer) error {
	_, err := w.Write(v.Data[:])
	return err
}
func (v *CertificateKeyRSA2048) dumpValue(w io.Writer) error {
	_, err := w.Write(v.Data[:])
	return err
}
func (v *CertificateKeyECCB223) dumpValue(w io.Writer) error {
	_, err := w.Write(v.Data[:])
	return err
}
