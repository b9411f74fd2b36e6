// Command uubed encodes embeddings from the command line.
//
//	uubed encode -m simhash --planes 64 0a1b2c3d
//	uubed decode -m q64 BSj0
//	uubed batch -m topk -k 8 -i embeddings.hex.zst -o codes.txt
//
// The exit status is the numeric error code of the failure (0 on success).
package main

import (
	"errors"
	"io"
	"os"

	"github.com/hupe1980/uubed/errs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	return int(exitCode(err))
}

// usageError marks invalid command-line usage.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) errs.Code {
	if err == nil {
		return errs.CodeSuccess
	}
	var ue usageError
	if errors.As(err, &ue) {
		return errs.CodeInvalidParameter
	}
	return errs.CodeOf(err)
}
