package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/uubed"
	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/mq64"
	"github.com/hupe1980/uubed/recovery"
)

func newDecodeCmd(c *cli) *cobra.Command {
	var (
		method  string
		strict  bool
		lenient bool
	)

	cmd := &cobra.Command{
		Use:   "decode <encoded>",
		Short: "Decode a Q64 or Mq64 string to hex",
		Long: `Decode a Q64 or Mq64 string and print the bytes as hex.

Examples:
  uubed decode BSj0
  uubed decode -m mq64 --strict 'AQgw:AQgwAQgw'
  uubed decode --lenient 'BS j0!'`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := uubed.ParseMethod(method)
			if err != nil {
				return err
			}
			if strict && lenient {
				return errs.IncompatibleParameters("--strict and --lenient are mutually exclusive")
			}

			var data []byte
			switch {
			case lenient && m == uubed.MethodQ64:
				data, err = recovery.DecodeLenient(args[0])
			case strict && m == uubed.MethodMq64:
				data, err = mq64.DecodeStrict(args[0])
			case strict || lenient:
				return errs.IncompatibleParameters(fmt.Sprintf("flag not supported for method %s", m))
			default:
				data, err = uubed.NewEncoder(uubed.WithLogger(c.logger)).Decode(cmd.Context(), m, args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "q64", "encoding method (q64, mq64)")
	cmd.Flags().BoolVar(&strict, "strict", false, "validate every Mq64 segment")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "strip non-Q64 characters before decoding")

	return cmd
}
