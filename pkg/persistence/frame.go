// Package persistence implements the append-only journal used to make a
// graph engine durable: every mutation is encoded as a checksummed binary
// frame, and replaying the journal reconstructs the graph.
package persistence

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

// Binary journal protocol constants.
const (
	// frameMagic marks the start of a valid frame, so a corrupted file
	// can be detected when scanning.
	frameMagic = 0xC7

	// headerSize is the fixed frame metadata:
	// 1 byte (magic) + 1 byte (op) + 4 bytes (length) + 4 bytes (CRC32).
	headerSize = 10
)

// Op identifies the graph mutation a frame carries.
type Op byte

const (
	OpAddNode Op = 0x01
	OpLink    Op = 0x02
	OpUnlink  Op = 0x03
)

var (
	// ErrInvalidMagic indicates the stream lost synchronization or the
	// file is not a journal.
	ErrInvalidMagic = errors.New("invalid journal magic byte")
	// ErrChecksumMismatch indicates payload corruption.
	ErrChecksumMismatch = errors.New("journal checksum mismatch")
	// ErrIncompleteFrame indicates the file ended mid-frame, typically a
	// torn write from a crash.
	ErrIncompleteFrame = errors.New("incomplete journal frame")
)

// WriteFrame encodes one mutation as
// [magic(1)][op(1)][length(4)][crc32(4)][payload(N)] and writes it to w.
// Wrap w in a bufio.Writer so header and payload land in one syscall.
func WriteFrame(w io.Writer, op Op, payload []byte) error {
	header := make([]byte, headerSize)
	header[0] = frameMagic
	header[1] = byte(op)
	binary.LittleEndian.PutUint32(header[2:6], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[6:10], crc32.ChecksumIEEE(payload))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads and validates the next frame.
// A clean EOF at a frame boundary is reported as io.EOF; a partial header
// or payload is reported as ErrIncompleteFrame.
func ReadFrame(r io.Reader) (Op, []byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, ErrIncompleteFrame
	}

	if header[0] != frameMagic {
		return 0, nil, ErrInvalidMagic
	}
	op := Op(header[1])
	length := binary.LittleEndian.Uint32(header[2:6])
	wantCRC := binary.LittleEndian.Uint32(header[6:10])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return op, nil, ErrIncompleteFrame
	}
	if crc32.ChecksumIEEE(payload) != wantCRC {
		return op, nil, ErrChecksumMismatch
	}
	return op, payload, nil
}
