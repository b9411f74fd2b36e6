package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/uubed/errs"
)

// Compression identifies a stream compression format.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression parses a --compress value.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return c, nil
	case "":
		return CompressionNone, nil
	default:
		return "", errs.InvalidInputValues(fmt.Sprintf("unknown compression %q", s))
	}
}

// compressionFor infers the format from a file extension.
func compressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// openInput opens path ("-" is stdin) and transparently decompresses
// .zst and .lz4 files.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var (
		src     io.Reader = stdin
		closeFn           = func() error { return nil }
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closeFn = f, f.Close
	}

	return newDecompressor(src, compressionFor(path), closeFn)
}

func newDecompressor(src io.Reader, c Compression, closeFn func() error) (io.ReadCloser, error) {
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			_ = closeFn()
			return nil, err
		}
		return readCloser{Reader: dec, close: func() error {
			dec.Close()
			return closeFn()
		}}, nil
	case CompressionLZ4:
		return readCloser{Reader: lz4.NewReader(src), close: closeFn}, nil
	default:
		return readCloser{Reader: src, close: closeFn}, nil
	}
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (w writeCloser) Close() error { return w.close() }

// openOutput creates path ("-" is stdout) and compresses what is written
// with c. Close flushes the compressor before closing the file.
func openOutput(path string, stdout io.Writer, c Compression) (io.WriteCloser, error) {
	var (
		dst     io.Writer = stdout
		closeFn           = func() error { return nil }
	)
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		dst, closeFn = f, f.Close
	}

	return newCompressor(dst, c, closeFn)
}

func newCompressor(dst io.Writer, c Compression, closeFn func() error) (io.WriteCloser, error) {
	switch c {
	case CompressionZstd:
		enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			_ = closeFn()
			return nil, err
		}
		return writeCloser{Writer: enc, close: func() error {
			if err := enc.Close(); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		}}, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(dst)
		return writeCloser{Writer: zw, close: func() error {
			if err := zw.Close(); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		}}, nil
	default:
		return writeCloser{Writer: dst, close: closeFn}, nil
	}
}
