package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/uubed"
)

func newBatchCmd(c *cli) *cobra.Command {
	var (
		flags       codecFlags
		input       string
		output      string
		compress    string
		threads     int
		chunkSize   int
		rateLimit   int64
		localCaches bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Encode a file of embeddings, one per line",
		Long: `Encode a file of embeddings concurrently. Input holds one embedding
per line; .zst and .lz4 inputs are decompressed transparently. Output holds
one code per line in input order.

Examples:
  uubed batch -m simhash -i vectors.hex.zst
  uubed batch -m topk -k 16 -i vectors.csv -f csv -o codes.txt.lz4 --compress lz4
  cat vectors.hex | uubed batch -m zorder --threads 4`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			if err := flags.apply(fs, &c.cfg); err != nil {
				return err
			}
			if fs.Changed("threads") {
				c.cfg.Batch.Threads = threads
			}
			if fs.Changed("chunk-size") {
				c.cfg.Batch.ChunkSize = chunkSize
			}
			if fs.Changed("rate-limit") {
				c.cfg.Batch.RateLimit = rateLimit
			}
			if fs.Changed("local-caches") {
				c.cfg.Batch.LocalCaches = localCaches
			}

			comp, err := ParseCompression(compress)
			if err != nil {
				return err
			}
			if !fs.Changed("compress") && output != "-" {
				comp = compressionFor(output)
			}

			in, err := openInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			embeddings, err := readEmbeddings(in, c.cfg.Format)
			_ = in.Close()
			if err != nil {
				return err
			}

			opts, err := c.cfg.EncoderOptions(c.logger)
			if err != nil {
				return err
			}
			enc := uubed.NewEncoder(opts...)
			p := uubed.NewBatchProcessor(c.cfg.BatchOptions(c.logger)...)

			start := time.Now()
			var codes []string
			if c.cfg.Method == uubed.MethodSimHash && c.cfg.Batch.LocalCaches {
				codes, err = p.EncodeSimHash(cmd.Context(), embeddings, c.cfg.Planes)
			} else {
				codes, err = p.EncodeWith(cmd.Context(), enc, c.cfg.Method, embeddings)
			}
			if err != nil {
				return err
			}

			out, err := openOutput(output, cmd.OutOrStdout(), comp)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(out)
			for _, code := range codes {
				if _, err := fmt.Fprintln(w, code); err != nil {
					_ = out.Close()
					return err
				}
			}
			if err := w.Flush(); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			c.logger.Info("batch written",
				"method", c.cfg.Method.String(),
				"count", len(codes),
				"elapsed", time.Since(start),
			)
			return nil
		},
	}

	fs := cmd.Flags()
	flags.register(fs)
	fs.StringVarP(&input, "input", "i", "-", "input file (- for stdin)")
	fs.StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	fs.StringVar(&compress, "compress", "", "output compression (none, zstd, lz4); inferred from the output extension")
	fs.IntVar(&threads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	fs.IntVar(&chunkSize, "chunk-size", 0, "embeddings per task (0 = 10000/threads)")
	fs.Int64Var(&rateLimit, "rate-limit", 0, "maximum embeddings per second (0 = unlimited)")
	fs.BoolVar(&localCaches, "local-caches", false, "give every SimHash worker its own matrix cache")

	return cmd
}
