package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// schemaCmd discovers the account schema from live data.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Discover the account schema",
	Long: `Discover the account schema by sampling the backing store.

Attribute names come from the first account record; the identity,
display, and group roles are fixed by convention.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		schema, err := conn.DiscoverSchema(cmd.Context())
		if err != nil {
			return err
		}
		return printOutput(schema)
	},
}

// testCmd verifies connectivity and credentials against the store.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity to the backing store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		if err := conn.TestConnection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Connection OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(testCmd)
}
