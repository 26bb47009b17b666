package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/pkg/directory"
	"github.com/agentstation/roster/pkg/errors"
)

var (
	listCursor     string
	createAttrs    []string
	updateSets     []string
	updateAdds     []string
	updateRemovals []string
)

// accountCmd groups the account lifecycle operations.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts in the backing store",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Long: `List accounts from the backing store.

When the source is configured as stateful, pass --cursor with the token
returned by a previous listing to receive only accounts modified since
that point. The command prints the next cursor token on stderr.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if conn.Stateful() {
			accounts, next, err := conn.ListAccountsStateful(ctx, listCursor)
			if err != nil {
				return err
			}
			if err := printOutput(accounts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Next cursor:", next)
			return nil
		}

		accounts, err := conn.ListAccounts(ctx)
		if err != nil {
			return err
		}
		return printOutput(accounts)
	},
}

var accountGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a single account by its key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		account, err := conn.ReadAccount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(account)
	},
}

var accountCreateCmd = &cobra.Command{
	Use:   "create <identity>",
	Short: "Create a new account",
	Long: `Create an account with the given identity attribute.

Additional attributes are supplied with repeated --attr key=value
flags. A password is generated when none is provided.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		attrs, err := parsePairs(createAttrs)
		if err != nil {
			return err
		}

		account, err := conn.CreateAccount(cmd.Context(), directory.CreateRequest{
			Identity:   args[0],
			Attributes: attrs,
		})
		if err != nil {
			return err
		}
		return printOutput(account)
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update <key>",
	Short: "Update account attributes",
	Long: `Apply attribute changes to an account.

Changes are supplied with repeated --set, --add, and --remove flags
(key=value) and are applied one at a time, in order, each written
through to the backing store before the next is resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		changes, err := collectChanges()
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return errors.NewValidationError("changes", nil, "at least one --set, --add, or --remove is required")
		}

		account, err := conn.UpdateAccount(cmd.Context(), args[0], changes)
		if err != nil {
			return err
		}
		return printOutput(account)
	},
}

var accountDisableCmd = &cobra.Command{
	Use:   "disable <key>",
	Short: "Disable an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		account, err := conn.DisableAccount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(account)
	},
}

var accountEnableCmd = &cobra.Command{
	Use:   "enable <key>",
	Short: "Enable an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		account, err := conn.EnableAccount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(account)
	},
}

var accountUnlockCmd = &cobra.Command{
	Use:   "unlock <key>",
	Short: "Unlock an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		account, err := conn.UnlockAccount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(account)
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := newConnector()
		if err != nil {
			return err
		}

		if err := conn.DeleteAccount(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Account deleted:", args[0])
		return nil
	},
}

func init() {
	accountListCmd.Flags().StringVar(&listCursor, "cursor", "", "resume token from a previous stateful listing")
	accountCreateCmd.Flags().StringArrayVar(&createAttrs, "attr", nil, "attribute as key=value (repeatable)")
	accountUpdateCmd.Flags().StringArrayVar(&updateSets, "set", nil, "replace an attribute value, key=value (repeatable)")
	accountUpdateCmd.Flags().StringArrayVar(&updateAdds, "add", nil, "add a value to an attribute, key=value (repeatable)")
	accountUpdateCmd.Flags().StringArrayVar(&updateRemovals, "remove", nil, "remove a value from an attribute, key=value (repeatable)")

	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountGetCmd)
	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountDisableCmd)
	accountCmd.AddCommand(accountEnableCmd)
	accountCmd.AddCommand(accountUnlockCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	rootCmd.AddCommand(accountCmd)
}

// parsePairs turns repeated key=value flags into an attribute map.
func parsePairs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		attrs[key] = value
	}
	return attrs, nil
}

// collectChanges builds the ordered change list from the update flags.
// Sets come first, then adds, then removals.
func collectChanges() ([]directory.AttributeChange, error) {
	var changes []directory.AttributeChange

	appendChanges := func(pairs []string, op directory.Op) error {
		for _, pair := range pairs {
			key, value, err := splitPair(pair)
			if err != nil {
				return err
			}
			changes = append(changes, directory.AttributeChange{
				Attribute: key,
				Op:        op,
				Value:     value,
			})
		}
		return nil
	}

	if err := appendChanges(updateSets, directory.OpSet); err != nil {
		return nil, err
	}
	if err := appendChanges(updateAdds, directory.OpAdd); err != nil {
		return nil, err
	}
	if err := appendChanges(updateRemovals, directory.OpRemove); err != nil {
		return nil, err
	}
	return changes, nil
}

func splitPair(pair string) (string, string, error) {
	key, value, found := strings.Cut(pair, "=")
	if !found || key == "" {
		return "", "", errors.NewValidationError("attribute", pair, "must be key=value")
	}
	return key, value, nil
}
