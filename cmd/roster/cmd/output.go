package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/roster/pkg/errors"
)

// printOutput writes v to stdout in the format selected by --output.
func printOutput(v any) error {
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Print(string(data))
	default:
		return errors.NewValidationError("output", outputFormat, "must be json or yaml")
	}
	return nil
}
