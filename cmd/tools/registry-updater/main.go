// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"canon-builder/internal/common/validation"
	"canon-builder/pkg/registry"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var registryPath string

	root := &cobra.Command{
		Use:           "registry-updater",
		Short:         "Inspect and edit the generator registry override file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  registry-updater set --kind technology --field enabled --value false
  registry-updater set --kind character --field tags --value being,protagonist
  registry-updater validate --path configs/registry.json
  registry-updater show`,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&registryPath, "path", "configs/registry.json", "Path to registry override file")

	root.AddCommand(
		newShowCmd(&registryPath),
		newSetCmd(&registryPath),
		newValidateCmd(&registryPath),
	)
	return root
}

func newShowCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective registry (built-in table plus override)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := effectiveRegistry(*path)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reg)
		},
	}
}

func newSetCmd(path *string) *cobra.Command {
	var kind, field, value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update one field of a generator (enabled, description, displayName, tags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := registry.ReadOverride(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := override.SetField(kind, field, value); err != nil {
				return err
			}
			if err := registry.SaveOverride(override, *path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated generator %s, field %s to %s\n", kind, field, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Generator kind (e.g. technology)")
	cmd.Flags().StringVar(&field, "field", "", "Field to update")
	cmd.Flags().StringVar(&value, "value", "", "New value for the field")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the override file and every generator input schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := effectiveRegistry(*path)
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			for _, g := range reg.Generators {
				if _, err := validation.NewValidator(g.InputSchema); err != nil {
					return fmt.Errorf("generator %s: %w", g.Kind, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d generators (%d enabled).\n",
				len(reg.Generators), len(reg.Enabled()))
			return nil
		},
	}
}

// effectiveRegistry merges the override at path onto the built-in table;
// a missing file leaves the built-in table unchanged.
func effectiveRegistry(path string) (*registry.GeneratorRegistry, error) {
	override, err := registry.ReadOverride(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return registry.Default().Merge(override)
}
