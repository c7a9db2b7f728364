package cat

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bitfield/script"
	"github.com/pkg/errors"
)

// StdinSource is the source identifier that stands for standard input.
const StdinSource = "-"

// ErrMalformedText is returned when a source is not valid UTF-8 text.
var ErrMalformedText = errors.New("malformed text")

// ReadFailure reports that at least one requested source could not be opened, read or decoded.
// Sources always holds the full list of requested sources, not only the failing one.
type ReadFailure struct {
	Sources []string
	Err     error
}

func (e *ReadFailure) Error() string {
	return "cannot read files: " + strings.Join(e.Sources, ", ")
}

func (e *ReadFailure) Unwrap() error {
	return e.Err
}

// Assembler resolves sources into one ordered sequence of lines.
type Assembler struct {
	// Stdin is read for the StdinSource identifier, and when no source is given.
	Stdin io.Reader
	// Open opens a named source. It defaults to os.Open.
	Open func(name string) (io.ReadCloser, error)
}

// NewAssembler returns an Assembler reading files from the local file system.
func NewAssembler(stdin io.Reader) *Assembler {
	return &Assembler{
		Stdin: stdin,
		Open:  openFile,
	}
}

func openFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return f, nil
}

// Assemble reads every source in order and returns their lines concatenated. An empty source list reads standard
// input. Each source is split on its own, so a source without a trailing newline never merges into the next one.
//
// The first source that fails aborts the assembly with a *ReadFailure and no lines.
func (a *Assembler) Assemble(sources []string) (Lines, error) {
	requested := sources
	if len(requested) == 0 {
		requested = []string{StdinSource}
	}

	var lines Lines

	for _, source := range requested {
		text, err := a.read(source)
		if err != nil {
			return nil, &ReadFailure{
				Sources: append([]string(nil), requested...),
				Err:     errors.Wrapf(err, "source %q", source),
			}
		}

		lines = append(lines, SplitLines(text)...)
	}

	return lines, nil
}

func (a *Assembler) read(source string) (string, error) {
	if source == StdinSource {
		return readAll(a.Stdin)
	}

	open := a.Open
	if open == nil {
		open = openFile
	}

	rc, err := open(source)
	if err != nil {
		return "", errors.Wrap(err, "unable to open")
	}
	defer rc.Close()

	return readAll(rc)
}

// readAll drains r through a script pipe. The reader is wrapped so the pipe never closes it: standard input stays
// usable when it is requested more than once, and files are closed by their opener.
func readAll(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}

	text, err := script.NewPipe().WithReader(struct{ io.Reader }{r}).String()
	if err != nil {
		return "", errors.Wrap(err, "unable to read")
	}

	if !utf8.ValidString(text) {
		return "", ErrMalformedText
	}

	return text, nil
}

// SplitLines splits text on newlines. The terminator of the final line is optional, a carriage return before a
// newline is dropped, and an empty text has no lines.
func SplitLines(text string) Lines {
	if text == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
