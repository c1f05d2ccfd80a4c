package generator

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	apperrors "canon-builder/internal/common/errors"
	"canon-builder/internal/common/logger"
	"canon-builder/internal/common/metrics"
	"canon-builder/internal/models"
	"canon-builder/pkg/registry"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T, config *Config) *Handler {
	return NewHandler(config, nil, nil, logger.NewTestLogger(t))
}

func strPtr(s string) *string { return &s }

var kindCases = []struct {
	kind     models.EntityType
	pattern  *regexp.Regexp
	name     string
	sections []string
}{
	{models.EntityTypeUniverse, regexp.MustCompile(`^u_[0-9a-f]{8}$`), "New Universe", []string{"## Overview", "## Structure", "## Development Status"}},
	{models.EntityTypeWorld, regexp.MustCompile(`^w_[0-9a-f]{8}$`), "New World", []string{"## Geography", "## Resources", "## Inhabitants", "## Technology Level"}},
	{models.EntityTypeCharacter, regexp.MustCompile(`^ch_[0-9a-f]{8}$`), "New Character", []string{"## Background", "## Personality", "## Abilities", "## Relationships"}},
	{models.EntityTypeCulture, regexp.MustCompile(`^cu_[0-9a-f]{8}$`), "New Culture", []string{"## Overview", "## Values", "## Traditions", "## Technology", "## Government"}},
	{models.EntityTypeTechnology, regexp.MustCompile(`^t_[0-9a-f]{8}$`), "New Technology", []string{"## Overview", "## Principles", "## Applications", "## Impact", "## Development"}},
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_AllKinds(t *testing.T) {
	h := createTestHandler(t, nil)

	for _, tc := range kindCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			first, err := h.Execute(context.Background(), tc.kind, &models.GenerationRequest{})
			require.NoError(t, err)
			second, err := h.Execute(context.Background(), tc.kind, &models.GenerationRequest{})
			require.NoError(t, err)

			assert.Regexp(t, tc.pattern, first.ID)
			assert.Regexp(t, tc.pattern, second.ID)
			assert.NotEqual(t, first.ID, second.ID)

			assert.Equal(t, tc.kind, first.Type)
			assert.Equal(t, tc.name, first.Name)
			assert.Equal(t, first.Name, first.Title)
			assert.Equal(t, first.Name, Heading(first.Markdown))
			assert.True(t, len(first.Markdown) > len("# "+tc.name))
			assert.Equal(t, "# "+tc.name+"\n\n", first.Markdown[:len(tc.name)+4])
			for _, section := range tc.sections {
				assert.Contains(t, first.Markdown, "\n"+section+"\n")
			}
		})
	}
}

func TestHandler_ConvenienceMethods(t *testing.T) {
	h := createTestHandler(t, nil)
	ctx := context.Background()

	calls := map[models.EntityType]func(context.Context, *models.GenerationRequest) (*models.GeneratedEntity, error){
		models.EntityTypeUniverse:   h.GenerateUniverse,
		models.EntityTypeWorld:      h.GenerateWorld,
		models.EntityTypeCharacter:  h.GenerateCharacter,
		models.EntityTypeCulture:    h.GenerateCulture,
		models.EntityTypeTechnology: h.GenerateTechnology,
	}
	for kind, call := range calls {
		entity, err := call(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, kind, entity.Type)
	}
}

func TestHandler_RequestFieldsIgnored(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.Local)
	h := createTestHandler(t, &Config{
		Now:   func() time.Time { return fixed },
		NewID: func(prefix string) string { return prefix + "_deadbeef" },
	})

	empty, err := h.GenerateUniverse(context.Background(), &models.GenerationRequest{})
	require.NoError(t, err)
	filled, err := h.GenerateUniverse(context.Background(), &models.GenerationRequest{
		UniverseID: strPtr("u_x"),
		Prompt:     strPtr("ignored"),
	})
	require.NoError(t, err)

	assert.Equal(t, empty, filled)
	assert.Equal(t, "u_deadbeef", filled.ID)
	assert.Equal(t, "2025-03-14T09:26:53.589793", filled.CreatedAt)
}

func TestHandler_CreatedAt(t *testing.T) {
	h := createTestHandler(t, nil)

	var previous time.Time
	for i := 0; i < 50; i++ {
		entity, err := h.GenerateWorld(context.Background(), nil)
		require.NoError(t, err)

		ts, err := time.ParseInLocation(TimestampLayout, entity.CreatedAt, time.Local)
		require.NoError(t, err, "createdAt must be ISO-8601: %s", entity.CreatedAt)
		assert.False(t, ts.Before(previous), "createdAt went backwards: %s < %s", ts, previous)
		previous = ts
	}
}

func TestHandler_Concurrent(t *testing.T) {
	h := createTestHandler(t, nil)

	const workers, perWorker = 8, 50
	ids := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			kind := models.EntityTypes[w%len(models.EntityTypes)]
			for i := 0; i < perWorker; i++ {
				entity, err := h.Execute(context.Background(), kind, nil)
				if err != nil {
					t.Errorf("execute: %v", err)
					return
				}
				ids <- entity.ID
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestHandler_CountsGeneratedEntities(t *testing.T) {
	h := createTestHandler(t, nil)
	counter := metrics.EntitiesGenerated.WithLabelValues("Culture")

	before := testutil.ToFloat64(counter)
	_, err := h.GenerateCulture(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	disabled := false
	reg, err := registry.Default().Merge(&registry.GeneratorRegistry{
		Generators: []registry.Generator{{Kind: "Technology", Enabled: &disabled}},
	})
	require.NoError(t, err)

	h := NewHandler(nil, reg, nil, logger.NewTestLogger(t))

	tests := []struct {
		name     string
		kind     models.EntityType
		wantCode apperrors.ErrorCode
	}{
		{"unknown kind", models.EntityType("Planet"), apperrors.ErrCodeUnsupportedEntityType},
		{"disabled kind", models.EntityTypeTechnology, apperrors.ErrCodeGeneratorDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, err := h.Execute(context.Background(), tt.kind, nil)
			require.Error(t, err)
			assert.Nil(t, entity)
			assert.Equal(t, tt.wantCode, apperrors.Normalize(err).Code)
		})
	}

	_, err = h.GenerateWorld(context.Background(), nil)
	assert.NoError(t, err, "other kinds stay available")
}

// ==========================
// Helpers
// ==========================

func TestNewEntityID(t *testing.T) {
	pattern := regexp.MustCompile(`^cu_[0-9a-f]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewEntityID("cu")
		require.Regexp(t, pattern, id)
		require.False(t, seen[id], fmt.Sprintf("duplicate id after %d draws", i))
		seen[id] = true
	}
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "New World", Heading("# New World\n\nbody"))
	assert.Equal(t, "Second", Heading("intro\n## Sub\n# Second\n"))
	assert.Equal(t, "", Heading("## Only subsections"))
}
