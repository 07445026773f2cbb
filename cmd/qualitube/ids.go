package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// collectIDs gathers ids from positional arguments and, if set, idsFile.
// Arguments may hold several ids separated by commas or spaces. In files,
// blank lines and lines starting with '#' are skipped. Order is kept and
// duplicates are not removed.
func collectIDs(args []string, idsFile string, stdin io.Reader) ([]string, error) {
	var ids []string
	for _, arg := range args {
		ids = append(ids, splitIDs(arg)...)
	}

	if idsFile == "" {
		return ids, nil
	}

	var r io.Reader
	if idsFile == "-" {
		r = stdin
	} else {
		// #nosec G304 -- the path comes from the operator
		f, err := os.Open(idsFile)
		if err != nil {
			return nil, fmt.Errorf("open ids file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	fromFile, err := readIDs(r)
	if err != nil {
		return nil, fmt.Errorf("read ids file: %w", err)
	}
	return append(ids, fromFile...), nil
}

func readIDs(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, splitIDs(line)...)
	}
	return ids, sc.Err()
}

func splitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
