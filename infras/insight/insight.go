package insight

//go:generate go run go.uber.org/mock/mockgen -source=./insight.go -destination=./mocks/insight_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"cohost/config"
	"cohost/infras/otel"
	"cohost/shared/constant"
)

const requestTimeout = 30 * time.Second

// Generator produces a short narrative from an analytics prompt. Callers are
// expected to fall back to their own canned text when Enabled reports false.
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type generatorImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Generator {
	if config.External.Insight.Endpoint == "" {
		log.Info().Msg("Insight generator disabled, no endpoint configured")
	}

	return &generatorImpl{
		config: config,
		client: &http.Client{Timeout: requestTimeout},
		otel:   otel,
	}
}

func (g *generatorImpl) Enabled() bool {
	return g.config.External.Insight.Endpoint != "" && g.config.External.Insight.APIKey != ""
}

// Generate calls an OpenAI-compatible chat completions endpoint and returns
// the first choice's content.
func (g *generatorImpl) Generate(ctx context.Context, system, prompt string) (content string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".insight.Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := chatRequest{
		Model: g.config.External.Insight.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal insight request: %w", err)
	}

	endpoint := g.config.External.Insight.Endpoint + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build insight request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+g.config.External.Insight.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return constant.Empty, fmt.Errorf("insight request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return constant.Empty, fmt.Errorf("insight endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode insight response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return constant.Empty, fmt.Errorf("insight endpoint returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
