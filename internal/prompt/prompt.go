// Package prompt reads interactive input for the command line tools.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Password prints label to out and reads a password from in without echo
// when in is a terminal.
func Password(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	defer fmt.Fprintln(out) // Print newline after password input

	// Check if stdin is a terminal
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}
	return Line(in)
}

// Line reads one line from in, the fallback for non-terminal input such
// as tests and pipes. It reads byte by byte so later prompts on the same
// reader still see their input.
func Line(in io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimRight(b.String(), "\r"), nil
			}
			b.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return strings.TrimRight(b.String(), "\r"), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
	}
}
