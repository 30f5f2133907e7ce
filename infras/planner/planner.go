package planner

//go:generate go run go.uber.org/mock/mockgen -source=./planner.go -destination=./mocks/planner_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"eventhub/config"
	"eventhub/infras/otel"
	"eventhub/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingAPIKey = errors.New("planner API key is not configured")
	ErrEmptyResponse = errors.New("planner returned no candidates")
)

const (
	otelScopeName = "planner"
)

// Client calls the generative-language API and returns the raw JSON text the
// model produced. The model is instructed to answer with application/json.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type clientImpl struct {
	config     *config.Config
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Client {
	return &clientImpl{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.External.Planner.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

func (c *clientImpl) GenerateJSON(ctx context.Context, prompt string) (res []byte, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".GenerateJSON")
	defer scope.End()
	defer scope.TraceIfError(err)

	apiKey := c.config.External.Planner.APIKey
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	scope.SetAttribute("planner.model", c.config.External.Planner.Model)

	payload, err := json.Marshal(generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: constant.ContentTypeJSON,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal planner request: %w", err)
	}

	url := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		c.config.External.Planner.BaseURL,
		c.config.External.Planner.Model,
		apiKey,
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build planner request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	response, err := c.httpClient.Do(request)
	if err != nil {
		log.Error().Err(err).Msg("planner request failed")

		return nil, fmt.Errorf("planner request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planner returned status %d", response.StatusCode)
	}

	var decoded generateResponse
	if err = json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode planner response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	return []byte(decoded.Candidates[0].Content.Parts[0].Text), nil
}
