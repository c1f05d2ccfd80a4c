package main

import (
	"fmt"

	"canon-builder/internal/api"
	"canon-builder/internal/common/config"
	apperrors "canon-builder/internal/common/errors"
	"canon-builder/internal/common/logger"
	"canon-builder/internal/common/observability"
	"canon-builder/internal/generator"
	"canon-builder/internal/models"
	"canon-builder/pkg/registry"
)

// app holds the wired components shared by the serve and generate commands.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	obs       *observability.Observability
	registry  *registry.GeneratorRegistry
	generator *generator.Handler
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newApp(cfg *config.Config, log logger.Logger, obs *observability.Observability) (*app, error) {
	reg, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		log:       log,
		obs:       obs,
		registry:  reg,
		generator: generator.NewHandler(generator.LoadConfig(), reg, obs, log),
	}, nil
}

// buildRegistry loads the optional override file and switches off every
// generator disabled in config, so both sources agree.
func buildRegistry(cfg *config.Config) (*registry.GeneratorRegistry, error) {
	reg := registry.Default()
	if path := cfg.Registry.Path; path != "" {
		loaded, err := registry.LoadRegistry(path)
		if err != nil {
			return nil, apperrors.NewRegistryLoadFailedError(path, err)
		}
		reg = loaded
	}

	var disabled []registry.Generator
	for _, kind := range models.EntityTypes {
		if !config.IsGeneratorEnabled(cfg, string(kind)) {
			off := false
			disabled = append(disabled, registry.Generator{Kind: string(kind), Enabled: &off})
		}
	}
	if len(disabled) == 0 {
		return reg, nil
	}

	merged, err := reg.Merge(&registry.GeneratorRegistry{Generators: disabled})
	if err != nil {
		return nil, fmt.Errorf("apply generator config: %w", err)
	}
	return merged, nil
}

func (a *app) apiHandler() (*api.Handler, error) {
	return api.NewHandler(api.Options{
		ServiceName:        a.cfg.App.Name,
		MaxBodyBytes:       a.cfg.Server.MaxBodyBytes,
		CORSAllowedOrigins: a.cfg.Server.CORSAllowedOrigins,
		IsEnabled: func(kind string) bool {
			return config.IsGeneratorEnabled(a.cfg, kind)
		},
	}, a.generator, a.registry, a.log)
}
