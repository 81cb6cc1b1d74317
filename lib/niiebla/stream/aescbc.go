package stream

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

const aesBlockSize = 16

// CBCStream wraps a seekable stream of AES-128-CBC ciphertext. Reads at an
// arbitrary offset transparently realign to the enclosing 16-byte block
// window: a fresh BlockMode is built from the stored key/IV on every call so
// the stored IV is never mutated by a partial read. Writes require the
// caller to supply a buffer whose length is already a multiple of 16 — the
// content being written is assumed to be exactly block-sized, since the
// logical IV for any given offset depends on which content this stream was
// constructed for.
type CBCStream struct {
	stream io.ReadWriteSeeker
	key    [16]byte
	iv     [16]byte
}

// NewCBCStream creates a CBCStream over s using the given key and IV.
func NewCBCStream(s io.ReadWriteSeeker, key, iv [16]byte) *CBCStream {
	return &CBCStream{stream: s, key: key, iv: iv}
}

// IntoInner returns the wrapped stream.
func (c *CBCStream) IntoInner() io.ReadWriteSeeker {
	return c.stream
}

func (c *CBCStream) newDecrypter() (cipher.BlockMode, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewCBCDecrypter(block, c.iv[:]), nil
}

func (c *CBCStream) newEncrypter() (cipher.BlockMode, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewCBCEncrypter(block, c.iv[:]), nil
}

// Read implements io.Reader. The requested window is extended to the
// enclosing 16-byte-aligned blocks plus the block before them (whose
// ciphertext chains into the first requested block), decrypted in one shot,
// then the requested sub-range is copied into buf. At the end of the stream
// it returns io.EOF.
func (c *CBCStream) Read(buf []byte) (int, error) {
	originalPosition, err := StreamPosition(c.stream)
	if err != nil {
		return 0, err
	}
	streamLen, err := c.stream.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	streamLen++

	var startPosition int64
	if originalPosition >= aesBlockSize {
		startPosition = int64(FloorAlign(uint64(originalPosition), aesBlockSize)) - aesBlockSize
	}

	startPadding := originalPosition - startPosition

	bufLen := int64(len(buf))
	if originalPosition+bufLen > streamLen {
		bufLen -= (originalPosition + bufLen) - streamLen
	}
	if bufLen <= 0 && len(buf) > 0 {
		if _, err := c.stream.Seek(originalPosition, io.SeekStart); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	if bufLen < 0 {
		bufLen = 0
	}

	if _, err := c.stream.Seek(startPosition, io.SeekStart); err != nil {
		return 0, err
	}

	length := AlignToBoundary(uint64(startPadding+bufLen), aesBlockSize)

	encryptedBuffer := make([]byte, length)
	decryptedBuffer := make([]byte, length)

	if err := readBestEffort(c.stream, encryptedBuffer); err != nil {
		return 0, err
	}

	decrypter, err := c.newDecrypter()
	if err != nil {
		return 0, err
	}
	if len(encryptedBuffer) > 0 {
		decrypter.CryptBlocks(decryptedBuffer, encryptedBuffer)
	}

	n := copy(buf, decryptedBuffer[startPadding:startPadding+bufLen])
	return n, nil
}

// Write encrypts buf (whose length must be a multiple of 16) and writes the
// ciphertext to the underlying stream. Any other length is rejected because,
// unlike Read, it cannot transparently realign an unaligned request: the IV
// for a given offset is a property of the logical content, not of the
// stream position.
func (c *CBCStream) Write(buf []byte) (int, error) {
	if len(buf)%aesBlockSize != 0 {
		return 0, fmt.Errorf("cbc stream write buffer of %d bytes is not a multiple of %d", len(buf), aesBlockSize)
	}

	encrypter, err := c.newEncrypter()
	if err != nil {
		return 0, err
	}

	encryptedBuffer := make([]byte, len(buf))
	if len(buf) > 0 {
		encrypter.CryptBlocks(encryptedBuffer, buf)
	}

	return c.stream.Write(encryptedBuffer)
}

// Seek implements io.Seeker by delegating to the underlying stream.
func (c *CBCStream) Seek(offset int64, whence int) (int64, error) {
	return c.stream.Seek(offset, whence)
}
