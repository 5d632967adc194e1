package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tendermint/ics07/config"
	"github.com/tendermint/ics07/ibc/host"
	"github.com/tendermint/ics07/ibc/tendermint"
	"github.com/tendermint/ics07/libs/log"
	tmos "github.com/tendermint/ics07/libs/os"
)

// HeaderPair is the input of the build command.
type HeaderPair struct {
	Header1 *tendermint.Header `json:"header_1"`
	Header2 *tendermint.Header `json:"header_2"`
}

// MakeBuildCommand returns the command that validates two conflicting
// headers and writes the misbehaviour envelope.
func MakeBuildCommand(conf *config.Config, logger log.Logger) *cobra.Command {
	var (
		clientID    string
		headersFile string
		outFile     string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a misbehaviour envelope from two conflicting headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = conf.Evidence.ClientID
			}
			id, err := host.ParseClientID(clientID)
			if err != nil {
				return err
			}

			pair, err := readHeaderPair(headersFile)
			if err != nil {
				return err
			}

			opts, flush, err := evidenceOptions(conf, logger)
			if err != nil {
				return err
			}
			m, err := tendermint.NewMisbehaviour(id, *pair.Header1, *pair.Header2, opts...)
			if ferr := flush(); ferr != nil {
				logger.Error("failed to write metrics", "err", ferr)
			}
			if err != nil {
				return fmt.Errorf("building misbehaviour: %w", err)
			}

			out, err := encodeEnvelope(m.EncodeEnvelope(), format)
			if err != nil {
				return err
			}
			logger.Info("built misbehaviour", "evidence", m.String(), "out", outFile)

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return tmos.WriteFileAtomic(outFile, out, 0644)
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "client the evidence is submitted to (defaults to evidence.client-id)")
	cmd.Flags().StringVar(&headersFile, "headers", "", "JSON file holding header_1 and header_2")
	cmd.Flags().StringVar(&outFile, "out", "", "output file (defaults to stdout)")
	cmd.Flags().StringVar(&format, "format", formatHex, "output encoding: hex, base64 or raw")
	_ = cmd.MarkFlagRequired("headers")

	return cmd
}

func readHeaderPair(path string) (HeaderPair, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return HeaderPair{}, err
	}
	var pair HeaderPair
	if err := json.Unmarshal(bz, &pair); err != nil {
		return HeaderPair{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	switch {
	case pair.Header1 == nil:
		return HeaderPair{}, errors.New("header_1 is missing")
	case pair.Header2 == nil:
		return HeaderPair{}, errors.New("header_2 is missing")
	}
	return pair, nil
}
