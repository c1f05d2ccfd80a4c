package main

import (
	"encoding/json"
	"fmt"

	"canon-builder/internal/common/logger"
	"canon-builder/internal/models"

	"github.com/spf13/cobra"
)

func newGenerateCmd(configPath *string) *cobra.Command {
	var (
		prompt     string
		universeID string
	)

	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Generate one entity and print it as JSON",
		Long: "Generates a single entity without starting the server.\n" +
			"Kinds: universe, world, character, culture, technology.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, *configPath, args[0], prompt, universeID)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Generation hint (accepted, does not change output)")
	cmd.Flags().StringVarP(&universeID, "universe-id", "u", "", "Owning universe id (accepted, does not change output)")

	return cmd
}

func runGenerate(cmd *cobra.Command, configPath, kindArg, prompt, universeID string) error {
	kind, ok := models.ParseEntityType(kindArg)
	if !ok {
		return fmt.Errorf("unknown entity kind %q, valid kinds: %v", kindArg, models.EntityTypes)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// stdout carries the entity JSON, so logs go to stderr.
	log := logger.NewZapAdapter(logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, "stderr"))

	a, err := newApp(cfg, log, nil)
	if err != nil {
		return err
	}

	req := &models.GenerationRequest{}
	if prompt != "" {
		req.Prompt = &prompt
	}
	if universeID != "" {
		req.UniverseID = &universeID
	}

	entity, err := a.generator.Execute(cmd.Context(), kind, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entity)
}
