package intcode

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
)

// scanCells is a bufio.SplitFunc that splits on commas.
func scanCells(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Parse reads a program of comma-separated signed integers. Whitespace
// around cells and a single trailing comma are permitted.
func Parse(r io.Reader) (mem Memory, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanCells)

	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, strings.TrimSpace(scanner.Text()))
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	if len(tokens) > 0 && len(tokens[len(tokens)-1]) == 0 {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) == 0 {
		err = ErrProgramEmpty
		return
	}

	mem = make(Memory, len(tokens))
	for n, token := range tokens {
		mem[n], err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			err = ErrSyntax{Index: n, Token: token, Err: ErrParseNumber(token)}
			mem = nil
			return
		}
	}

	return
}

// ParseString parses a program from text.
func ParseString(text string) (Memory, error) {
	return Parse(strings.NewReader(text))
}

// LoadFile parses a program file. The path "-" reads standard input.
func LoadFile(path string) (mem Memory, err error) {
	if path == "-" {
		return Parse(os.Stdin)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return Parse(inf)
}
