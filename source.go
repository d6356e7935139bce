package csvskema

import (
	"bufio"
	"errors"
	"io"
)

// LineSource yields successive raw lines. ReadLine returns io.EOF once the
// input is exhausted. Returned lines may carry their line terminator; the
// field cleaner drops it.
type LineSource interface {
	ReadLine() (string, error)
}

// LineReader is a LineSource over an io.Reader. Lines have no length limit,
// and a final line without a trailing newline is still returned.
type LineReader struct {
	br *bufio.Reader
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &LineReader{br: br}
	}
	return &LineReader{br: bufio.NewReaderSize(r, 64*1024)}
}

// ReadLine implements LineSource.
func (l *LineReader) ReadLine() (string, error) {
	line, err := l.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// sliceSource serves lines from memory.
type sliceSource struct {
	lines []string
	pos   int
}

// LinesSource returns a LineSource over lines, mostly useful in tests.
func LinesSource(lines ...string) LineSource { return &sliceSource{lines: lines} }

func (s *sliceSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	l := s.lines[s.pos]
	s.pos++
	return l, nil
}
