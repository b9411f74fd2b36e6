package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/validation"
)

const (
	formatHex = "hex"
	formatCSV = "csv"
)

// parseEmbedding parses one embedding in the given format.
func parseEmbedding(s, format string) ([]byte, error) {
	s = strings.TrimSpace(s)

	switch format {
	case formatHex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errs.InvalidInputValues(fmt.Sprintf("hex embedding: %v", err))
		}
		return b, nil
	case formatCSV:
		if s == "" {
			return []byte{}, nil
		}
		fields := strings.Split(s, ",")
		b := make([]byte, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
			if err != nil {
				return nil, errs.InvalidInputValues(fmt.Sprintf("csv embedding value %d: %q is not a byte", i, f))
			}
			b[i] = byte(v)
		}
		return b, nil
	default:
		return nil, errs.InvalidInputValues(fmt.Sprintf("unknown embedding format %q", format))
	}
}

// readEmbeddings reads one embedding per line, skipping blank lines and
// lines starting with '#'.
func readEmbeddings(r io.Reader, format string) ([][]byte, error) {
	sc := bufio.NewScanner(r)
	// A hex line holds two characters per byte.
	sc.Buffer(make([]byte, 0, 64*1024), 2*validation.MaxEmbeddingSize+2)

	var out [][]byte
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := parseEmbedding(text, format)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
