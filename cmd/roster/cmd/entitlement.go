package cmd

import (
	"github.com/spf13/cobra"
)

// entitlementCmd groups the entitlement read operations.
var entitlementCmd = &cobra.Command{
	Use:   "entitlement",
	Short: "Read entitlements from the backing store",
}

var entitlementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entitlements",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		entitlements, err := conn.ListEntitlements(cmd.Context())
		if err != nil {
			return err
		}
		return printOutput(entitlements)
	},
}

var entitlementGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a single entitlement by its key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		entitlement, err := conn.ReadEntitlement(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(entitlement)
	},
}

func init() {
	entitlementCmd.AddCommand(entitlementListCmd)
	entitlementCmd.AddCommand(entitlementGetCmd)
	rootCmd.AddCommand(entitlementCmd)
}
