// Package prompt asks the user for the input file when none is given on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Text is shown before reading the path.
const Text = "Enter the path of your file (CSV, Excel, or JSON): "

// ErrNoInput is returned when input ends before a line is read.
var ErrNoInput = errors.New("no file path provided")

// ReadPath writes the prompt to out and reads one line from in.
// Surrounding whitespace and a single pair of matching quotes are removed.
func ReadPath(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, Text)
	line, err := bufio.NewReader(in).ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "", ErrNoInput
	case err != nil && !errors.Is(err, io.EOF):
		return "", fmt.Errorf("read path: %w", err)
	}
	return clean(line), nil
}

// Path reads the file path from stdin, with line editing and filename
// completion when stdin is a terminal.
func Path(out io.Writer) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ReadPath(os.Stdin, out)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Text,
		AutoComplete:    readline.NewPrefixCompleter(readline.PcItemDynamic(completeFiles)),
		InterruptPrompt: "^C",
		Stdout:          out,
	})
	if err != nil {
		return "", fmt.Errorf("init prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrNoInput
	}
	if err != nil {
		return "", fmt.Errorf("read path: %w", err)
	}
	return clean(line), nil
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// completeFiles lists entries matching the typed prefix. Directories get a trailing separator.
func completeFiles(line string) []string {
	matches, err := filepath.Glob(line + "*")
	if err != nil {
		return nil
	}
	for i, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.IsDir() {
			matches[i] = m + string(filepath.Separator)
		}
	}
	return matches
}
