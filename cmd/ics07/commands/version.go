package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendermint/ics07/ibc/tendermint"
	"github.com/tendermint/ics07/types"
	"github.com/tendermint/ics07/version"
)

var verbose bool

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
			return nil
		}
		values, err := json.MarshalIndent(struct {
			ICS07         string `json:"ics07"`
			IBCClient     string `json:"ibc_client"`
			ClientType    string `json:"client_type"`
			BlockProtocol uint64 `json:"block_protocol"`
		}{
			ICS07:         version.Version,
			IBCClient:     version.IBCClientVersion,
			ClientType:    tendermint.ClientType,
			BlockProtocol: types.BlockProtocol,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(values))
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show protocol and library versions")
}
