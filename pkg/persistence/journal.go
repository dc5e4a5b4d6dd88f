package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// JournalWriter appends mutation frames to the journal file.
// Writes are buffered; Flush pushes them to the OS and Sync forces them
// to disk (fsync).
type JournalWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	path string
}

// OpenJournal opens or creates the journal file at path for appending.
func OpenJournal(path string) (*JournalWriter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &JournalWriter{
		file: file,
		buf:  bufio.NewWriter(file),
		path: path,
	}, nil
}

// Append writes one mutation frame to the buffer.
func (j *JournalWriter) Append(op Op, payload []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return WriteFrame(j.buf, op, payload)
}

// Flush pushes buffered frames to the OS file descriptor.
func (j *JournalWriter) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.buf.Flush()
}

// Sync flushes and then fsyncs the journal file.
func (j *JournalWriter) Sync() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.buf.Flush(); err != nil {
		return err
	}
	return j.file.Sync()
}

// Close flushes the buffer and closes the file.
func (j *JournalWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.buf.Flush(); err != nil {
		_ = j.file.Close()
		return err
	}
	return j.file.Close()
}

// Replay streams every frame of r to fn in write order.
//
// A torn final frame (crash during the last write) ends the replay
// without error, so an engine can recover everything up to the tear.
// Corruption before the tail, and errors from fn, abort the replay.
func Replay(r io.Reader, fn func(op Op, payload []byte) error) error {
	br := bufio.NewReader(r)
	for {
		op, payload, err := ReadFrame(br)
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, ErrIncompleteFrame) {
			// Tail of a crashed write; everything before it is intact.
			return nil
		}
		if err != nil {
			return fmt.Errorf("journal replay: %w", err)
		}
		if err := fn(op, payload); err != nil {
			return err
		}
	}
}

// ReplayFile opens path and replays it; a missing journal is not an
// error, it is simply an empty graph.
func ReplayFile(path string, fn func(op Op, payload []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()
	return Replay(f, fn)
}
