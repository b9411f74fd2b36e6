package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/uubed"
)

func newEncodeCmd(c *cli) *cobra.Command {
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "encode <embedding>",
		Short: "Encode a single embedding",
		Long: `Encode a single embedding and print the result.

Examples:
  uubed encode 1234                       # BSj0
  uubed encode -m topk -k 3 -f csv 10,50,30,80,20,90,40,70
  uubed encode -m simhash --planes 128 $(xxd -p -c0 vec.bin)`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd.Flags(), &c.cfg); err != nil {
				return err
			}

			embedding, err := parseEmbedding(args[0], c.cfg.Format)
			if err != nil {
				return err
			}

			opts, err := c.cfg.EncoderOptions(c.logger)
			if err != nil {
				return err
			}

			out, err := uubed.NewEncoder(opts...).Encode(cmd.Context(), c.cfg.Method, embedding)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}
