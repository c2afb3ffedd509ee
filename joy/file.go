package joy

import (
	"io"
	"os"

	"github.com/shakfu/pyjoy/internal/flushio"
	"github.com/shakfu/pyjoy/internal/runeio"
)

// fileHandle names an open FILE value. The three standard handles are
// pre-registered per spec section 3.1 ("Only three literal symbols: stdin,
// stdout, stderr; others arise only via fopen"); all others come from
// handleTable.open.
type fileHandle int64

const (
	handleStdin fileHandle = iota + 1
	handleStdout
	handleStderr
)

// fileEntry backs one open handle. Grounded on gothird's ioCore (io.go),
// which paired an io.RuneScanner input with a flushio.WriteFlusher output;
// here every handle keeps both directions (whichever the open mode uses)
// plus the underlying *os.File for fseek/ftell.
type fileEntry struct {
	name   string
	reader runeio.Reader
	writer flushio.WriteFlusher
	seeker io.Seeker
	closer io.Closer
	closed bool
	atEOF  bool
	lastOp error
}

// handleTable owns every open FILE value for one Interp.
type handleTable struct {
	entries map[fileHandle]*fileEntry
	next    fileHandle
}

func newHandleTable(stdin io.Reader, stdout, stderr io.Writer) *handleTable {
	t := &handleTable{
		entries: make(map[fileHandle]*fileEntry),
		next:    handleStderr + 1,
	}
	t.entries[handleStdin] = &fileEntry{name: "stdin", reader: runeio.NewReader(stdin)}
	t.entries[handleStdout] = &fileEntry{name: "stdout", writer: flushio.NewWriteFlusher(stdout)}
	t.entries[handleStderr] = &fileEntry{name: "stderr", writer: flushio.NewWriteFlusher(stderr)}
	return t
}

// open registers a new handle for path opened in mode ("r", "w", "a", ...).
func (t *handleTable) open(path, mode string) (fileHandle, error) {
	var flag int
	switch mode {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+", "w+", "a+":
		flag = os.O_RDWR | os.O_CREATE
	default:
		return 0, &FileError{Op: "fopen", Path: path, Err: os.ErrInvalid}
	}

	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return 0, &FileError{Op: "fopen", Path: path, Err: err}
	}

	entry := &fileEntry{name: path, seeker: f, closer: f}
	if flag == os.O_RDONLY || flag&os.O_RDWR != 0 {
		entry.reader = runeio.NewReader(f)
	}
	if flag != os.O_RDONLY {
		entry.writer = flushio.NewWriteFlusher(f)
	}

	h := t.next
	t.next++
	t.entries[h] = entry
	return h, nil
}

func (t *handleTable) get(op string, h fileHandle) (*fileEntry, error) {
	entry, ok := t.entries[h]
	if !ok {
		return nil, &FileError{Op: op, Err: os.ErrClosed}
	}
	if entry.closed {
		return nil, &FileError{Op: op, Path: entry.name, Err: os.ErrClosed}
	}
	return entry, nil
}

// close invalidates h; the next use of the handle must fail with
// FileError rather than silently succeed, per spec section 5.
func (t *handleTable) close(h fileHandle) error {
	entry, err := t.get("fclose", h)
	if err != nil {
		return err
	}
	entry.closed = true
	if entry.writer != nil {
		if ferr := entry.writer.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	if entry.closer != nil {
		if cerr := entry.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
