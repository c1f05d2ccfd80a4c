// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"canon-builder/internal/api"
	"canon-builder/internal/common/config"
	apperrors "canon-builder/internal/common/errors"
	builderhttp "canon-builder/internal/common/http"
	"canon-builder/internal/common/logger"
	"canon-builder/internal/common/observability"
	"canon-builder/internal/generator"
	"canon-builder/internal/models"
	"canon-builder/pkg/registry"
)

var (
	server   *httptest.Server
	recorder *tracetest.SpanRecorder
	obs      *observability.Observability
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to load config: %v", err))
	}

	log := logger.NewNoOpLogger()
	recorder = tracetest.NewSpanRecorder()
	obs = observability.New(cfg.App.Name,
		observability.WithRegisterer(prometheus.NewRegistry()),
		observability.WithSpanProcessor(recorder),
	)

	gen := generator.NewHandler(generator.LoadConfig(), registry.Default(), obs, log)
	handler, err := api.NewHandler(api.Options{
		ServiceName:        cfg.App.Name,
		MaxBodyBytes:       cfg.Server.MaxBodyBytes,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		IsEnabled: func(kind string) bool {
			return config.IsGeneratorEnabled(cfg, kind)
		},
	}, gen, registry.Default(), log)
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to build API: %v", err))
	}

	server = httptest.NewServer(handler.Routes())

	code := m.Run()

	server.Close()
	obs.Shutdown()
	os.Exit(code)
}

func post(t *testing.T, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestFullE2E(t *testing.T) {
	t.Log("🚀 Starting E2E test against the full route table...")

	// 1. Liveness
	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","service":"canon-builder"}`, string(body))

	// 2. Every generator, with and without request fields
	ids := make(map[string]bool)
	for _, kind := range models.EntityTypes {
		for _, payload := range []string{`{}`, `{"universeId":"u_0badf00d","prompt":"anything"}`} {
			resp, data := post(t, "/generate/"+kind.Slug(), payload)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

			var entity models.GeneratedEntity
			require.NoError(t, json.Unmarshal(data, &entity))
			assert.Equal(t, kind, entity.Type)
			assert.Equal(t, "New "+string(kind), entity.Name)
			assert.Equal(t, entity.Name, generator.Heading(entity.Markdown))
			assert.False(t, ids[entity.ID], "duplicate id %s", entity.ID)
			ids[entity.ID] = true
		}
	}

	// 3. Telemetry captured one span per generation
	spans := 0
	for _, s := range recorder.Ended() {
		if s.Name() == "generator.Execute" {
			spans++
		}
	}
	assert.GreaterOrEqual(t, spans, 2*len(models.EntityTypes))

	// 4. Scrape endpoint exposes request counters
	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	metricsBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(metricsBody), `entities_generated_total{entity_type="Universe"}`)

	t.Log("✅ ALL TESTS PASSED: full E2E workflow successful!")
}

func TestTypedClient(t *testing.T) {
	client := builderhttp.NewClient(server.URL, 5*time.Second)
	ctx := context.Background()

	service, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "canon-builder", service)

	prompt := "a frozen moon"
	entity, err := client.Generate(ctx, models.EntityTypeWorld, &models.GenerationRequest{Prompt: &prompt})
	require.NoError(t, err)
	assert.Equal(t, "New World", entity.Title)

	_, err = client.Generate(ctx, models.EntityType("Planet"), nil)
	require.Error(t, err)
}

func TestTypedClient_ValidationError(t *testing.T) {
	client := builderhttp.NewClient(server.URL, 5*time.Second)
	req, err := http.NewRequest(http.MethodPost, server.URL+"/generate/culture", strings.NewReader(`{"universeId":7}`))
	require.NoError(t, err)

	resp, err := client.DoWithContext(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, apperrors.ErrCodeRequestValidationFailed, envelope.Error.Code)
}

func TestCharacterExample(t *testing.T) {
	resp, data := post(t, "/generate/character", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "name", "title", "markdown", "type", "createdAt"} {
		assert.Contains(t, raw, key)
	}
	assert.Regexp(t, regexp.MustCompile(`^ch_[0-9a-f]{8}$`), raw["id"])
	assert.Equal(t, "New Character", raw["name"])
	assert.Equal(t, "Character", raw["type"])
	assert.Contains(t, raw["markdown"], "## Background")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}$`, raw["createdAt"])
}

func TestMalformedRequests(t *testing.T) {
	tests := []struct {
		body       string
		wantStatus int
	}{
		{`{"prompt":`, http.StatusBadRequest},
		{`{"prompt":123}`, http.StatusUnprocessableEntity},
		{`"just a string"`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		resp, data := post(t, "/generate/world", tt.body)
		assert.Equal(t, tt.wantStatus, resp.StatusCode, tt.body)
		assert.True(t, strings.Contains(string(data), `"error"`), string(data))
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const n = 100
	var (
		mu  sync.Mutex
		ids = make(map[string]bool, n)
		wg  sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(server.URL+"/generate/technology", "application/json", strings.NewReader(`{}`))
			if err != nil {
				t.Errorf("post: %v", err)
				return
			}
			defer resp.Body.Close()
			var entity models.GeneratedEntity
			if err := json.NewDecoder(resp.Body).Decode(&entity); err != nil {
				t.Errorf("decode: %v", err)
				return
			}
			mu.Lock()
			ids[entity.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, ids, n)
}

func TestRegistryOverrideFile(t *testing.T) {
	reg, err := registry.LoadRegistry("../../configs/registry.example.json")
	require.NoError(t, err)

	log := logger.NewNoOpLogger()
	handler, err := api.NewHandler(api.Options{}, generator.NewHandler(nil, reg, nil, log), reg, log)
	require.NoError(t, err)
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/generate/technology", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/generate/character", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func BenchmarkGenerateCharacter(b *testing.B) {
	gen := generator.NewHandler(nil, nil, nil, logger.NewNoOpLogger())
	req := &models.GenerationRequest{}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.GenerateCharacter(ctx, req)
	}
}
