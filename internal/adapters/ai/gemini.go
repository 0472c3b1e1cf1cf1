// internal/adapters/ai/gemini.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/httpclient"
	"reconforge/internal/platform/logx"
)

const (
	// DefaultBaseURL endpoint público de la API de Gemini.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel modelo usado si no se configura otro.
	DefaultModel = "gemini-1.5-flash"

	apiKeyHeader = "x-goog-api-key"
)

// Config configuración del cliente Gemini.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // vacío = DefaultBaseURL
	Timeout time.Duration // timeout por petición HTTP (0 = el del httpclient)
}

// GeminiClient implementa ports.Analyzer sobre la API generateContent de Gemini.
type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string
	http     *httpclient.Client
	prompts  *PromptBuilder
	logger   logx.Logger
}

// NewGeminiClient crea el cliente. Falla con ErrDependencyUnavailable si no hay API key.
func NewGeminiClient(cfg Config, logger logx.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.Wrap(errors.ErrDependencyUnavailable, "gemini api key not set")
	}
	if logger == nil {
		logger = logx.NewNop()
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	prompts, err := NewPromptBuilder()
	if err != nil {
		return nil, err
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.MaxRetries = 2
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}

	return &GeminiClient{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(cfg.BaseURL, "/"), url.PathEscape(cfg.Model)),
		http:     httpclient.New(httpCfg, logger),
		prompts:  prompts,
		logger:   logger.With("component", "gemini", "model", cfg.Model),
	}, nil
}

// Model retorna el modelo configurado.
func (c *GeminiClient) Model() string { return c.model }

// Analyze construye el prompt de la herramienta y retorna el texto del primer candidato.
func (c *GeminiClient) Analyze(ctx context.Context, tool string, payload any) (string, error) {
	prompt, err := c.prompts.Build(tool, payload)
	if err != nil {
		return "", err
	}
	return c.Generate(ctx, prompt)
}

// Generate envía un prompt libre a generateContent.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode gemini request")
	}

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, c.endpoint, body, map[string]string{apiKeyHeader: c.apiKey})
	if err != nil {
		return "", errors.Wrap(err, "gemini request failed")
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		resp.Body.Close()
		return "", err
	}

	raw, err := httpclient.ReadBody(resp)
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", errors.Wrap(errors.ErrInvalidResponse, "gemini response is not valid JSON")
	}

	text, ok := out.firstText()
	if !ok {
		if out.PromptFeedback.BlockReason != "" {
			return "", errors.Wrapf(errors.ErrInvalidResponse, "gemini blocked prompt: %s", out.PromptFeedback.BlockReason)
		}
		return "", errors.Wrap(errors.ErrInvalidResponse, "gemini returned no candidates")
	}

	c.logger.Debug("gemini response", "chars", len(text), "duration_ms", time.Since(start).Milliseconds())
	return text, nil
}

// Wire types of generateContent.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback"`
}

func (r generateResponse) firstText() (string, bool) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return r.Candidates[0].Content.Parts[0].Text, true
}
