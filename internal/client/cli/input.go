package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword wraps term.ReadPassword so tests can swap in a stub
// instead of needing a real terminal.
var readPassword = term.ReadPassword

// GetSimpleText asks the farmer for one line of input. The prompt goes to w
// on its own line followed by a "> " marker, and the answer comes back with
// surrounding whitespace stripped. Input that ends at EOF without a newline
// still counts as an answer.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal with echo disabled.
// The prompt is written to w, and a newline follows the hidden input so the
// next prompt starts on a fresh line.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
