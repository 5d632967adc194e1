package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tendermint/ics07/config"
	"github.com/tendermint/ics07/ibc/client"
	"github.com/tendermint/ics07/ibc/tendermint"
	"github.com/tendermint/ics07/libs/log"
)

type verifyResult struct {
	evidence client.Misbehaviour
	err      error
}

// MakeVerifyCommand returns the command that decodes and validates
// misbehaviour envelopes. It fails if any of them is rejected.
func MakeVerifyCommand(conf *config.Config, logger log.Logger) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "verify FILE...",
		Short: "Decode and validate misbehaviour envelopes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, flush, err := evidenceOptions(conf, logger)
			if err != nil {
				return err
			}
			reg := client.NewMisbehaviourRegistry()
			if err := tendermint.RegisterMisbehaviour(reg, opts...); err != nil {
				return err
			}

			results := make([]verifyResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					bz, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					if err := ctx.Err(); err != nil {
						return err
					}
					env, err := decodeEnvelope(bz, format)
					if err != nil {
						results[i] = verifyResult{err: fmt.Errorf("decoding %s: %w", format, err)}
						return nil
					}
					m, err := reg.DecodeEnvelope(env)
					results[i] = verifyResult{evidence: m, err: err}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			if err := flush(); err != nil {
				logger.Error("failed to write metrics", "err", err)
			}

			rejected := 0
			out := cmd.OutOrStdout()
			for i, res := range results {
				if res.err != nil {
					rejected++
					logger.Debug("rejected evidence", "file", args[i], "err", res.err)
					fmt.Fprintf(out, "%s: rejected: %v\n", args[i], res.err)
					continue
				}
				fmt.Fprintf(out, "%s: ok: %s\n", args[i], res.evidence)
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d evidence files rejected", rejected, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatHex, "input encoding: hex, base64 or raw")
	return cmd
}
