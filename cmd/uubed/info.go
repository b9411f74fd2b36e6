package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/uubed"
	"github.com/hupe1980/uubed/internal/simd"
	"github.com/hupe1980/uubed/validation"
)

func newInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show kernels, methods and limits",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			kernel := simd.ActiveKernel().String()
			if simd.IsOverridden() {
				kernel += " (UUBED_SIMD)"
			}
			fmt.Fprintf(w, "kernels:        %s\n", kernel)
			fmt.Fprintf(w, "cpu features:   %s\n", strings.Join(simd.Features(), " "))

			fmt.Fprint(w, "methods:       ")
			for _, m := range uubed.Methods() {
				fmt.Fprintf(w, " %s", m)
			}
			fmt.Fprintln(w)

			fmt.Fprintf(w, "max embedding:  %d bytes\n", validation.MaxEmbeddingSize)
			fmt.Fprintf(w, "max k:          %d\n", validation.MaxK)
			fmt.Fprintf(w, "max planes:     %d\n", validation.MaxSimHashPlanes)
			fmt.Fprintf(w, "max dimensions: %d\n", validation.MaxSimHashDimensions)
			fmt.Fprintf(w, "max matrix:     %d bytes\n", validation.MaxMatrixBytes)

			if limit := c.cfg.Resources().MemoryLimit(); limit > 0 {
				fmt.Fprintf(w, "matrix budget:  %d bytes\n", limit)
			} else {
				fmt.Fprintln(w, "matrix budget:  unlimited")
			}
			return nil
		},
	}
}
