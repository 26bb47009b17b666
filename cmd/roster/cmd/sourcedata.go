package cmd

import (
	"github.com/spf13/cobra"
)

var sourceDataQuery string

// sourceDataCmd exposes the auxiliary source-data reads used by
// configuration tooling.
var sourceDataCmd = &cobra.Command{
	Use:   "sourcedata",
	Short: "Browse auxiliary source data",
}

var sourceDataDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the available source data keys",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		return printOutput(conn.DiscoverSourceData(cmd.Context()))
	},
}

var sourceDataReadCmd = &cobra.Command{
	Use:   "read <key>",
	Short: "Read entries for a source data key",
	Long: `Read entries for a source data key.

The "id" key returns the configured base identifier. The "accounts"
key returns account entries, filtered by --query when supplied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		entries, err := conn.ReadSourceData(cmd.Context(), args[0], sourceDataQuery)
		if err != nil {
			return err
		}
		return printOutput(entries)
	},
}

func init() {
	sourceDataReadCmd.Flags().StringVar(&sourceDataQuery, "query", "", "substring filter for account entries")

	sourceDataCmd.AddCommand(sourceDataDiscoverCmd)
	sourceDataCmd.AddCommand(sourceDataReadCmd)
	rootCmd.AddCommand(sourceDataCmd)
}
