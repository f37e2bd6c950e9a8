// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pause blocks until the user acknowledges with a keypress.
package pause

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Prompt is printed before waiting.
const Prompt = "Press any key to continue . . ."

// Waiter blocks until the user acknowledges.
type Waiter interface {
	Wait() error
}

// Reader waits for one byte (or EOF) from in after printing Prompt to out.
type Reader struct {
	in  io.Reader
	out io.Writer
}

// NewReader returns a Reader over in and out.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: in, out: out}
}

// Wait prints the prompt and reads a single byte. EOF counts as acknowledgment.
func (r *Reader) Wait() error {
	fmt.Fprint(r.out, Prompt)
	defer fmt.Fprintln(r.out)
	return readOne(r.in)
}

func readOne(in io.Reader) error {
	buf := make([]byte, 1)
	if _, err := in.Read(buf); err != nil && err != io.EOF {
		return fmt.Errorf("reading acknowledgment: %w", err)
	}
	return nil
}

// Terminal waits for a single keypress on a terminal, switching it to raw
// mode so the key is accepted without Enter.
type Terminal struct {
	f   *os.File
	out io.Writer
}

// Wait puts the terminal in raw mode, reads one key, and restores the mode
// before the trailing newline is written.
func (t *Terminal) Wait() error {
	fd := int(t.f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return NewReader(t.f, t.out).Wait()
	}

	fmt.Fprint(t.out, Prompt)
	err = readOne(t.f)
	if rerr := term.Restore(fd, state); rerr != nil && err == nil {
		err = fmt.Errorf("restoring terminal: %w", rerr)
	}
	fmt.Fprintln(t.out)
	return err
}

// ForStdin picks a Terminal waiter when in is an interactive terminal and a
// Reader otherwise.
func ForStdin(in *os.File, out io.Writer) Waiter {
	if term.IsTerminal(int(in.Fd())) {
		return &Terminal{f: in, out: out}
	}
	return NewReader(in, out)
}
