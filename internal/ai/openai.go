package ai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
	defaultOpenAIEmbedModel = "text-embedding-3-small"
)

// OpenAIConfig covers both api.openai.com and any compatible gateway via
// base_url.
type OpenAIConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

type openAIProvider struct {
	apiKey  string
	baseURL string
}

type openAIChatRequest struct {
	Model    string          `json:"model"`
	Messages []openAIChatMsg `json:"messages"`
	Stream   bool            `json:"stream"`
}

type openAIChatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/chat/completions"
	reqBody := openAIChatRequest{
		Model:    model,
		Messages: []openAIChatMsg{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai response has no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// openAIEmbedder mirrors the gemini embedder's batch behavior: one request
// per text with a retry budget, zero-vector degradation and hard failure only
// when nothing succeeded. The OpenAI API has no task-type hint, so the intent
// is ignored.
type openAIEmbedder struct {
	apiKey  string
	baseURL string
	model   string
	sleep   SleepFunc
	embedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *openAIEmbedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	endpoint := strings.TrimRight(e.baseURL, "/") + "/embeddings"
	data, err := json.Marshal(openAIEmbedRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var out openAIEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai response has no embeddings")
	}
	return out.Data[0].Embedding, nil
}

func (e *openAIEmbedder) Encode(ctx context.Context, texts []string, intent Intent) ([][]float32, error) {
	if e.apiKey == "" {
		return nil, ErrUnavailable
	}
	embedFn := e.embedFn
	if embedFn == nil {
		embedFn = e.embedOne
	}
	vectors := make([][]float32, len(texts))
	dim := 0
	for i, text := range texts {
		var vec []float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			vec, embedErr = embedFn(ctx, text)
			return embedErr
		}, embedMaxAttempts, embedRetryBaseWait, e.sleep)
		if err != nil {
			logutil.GetLogger(ctx).Warn("embedding failed for text, degrading to zero vector",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		vectors[i] = vec
		if dim == 0 {
			dim = len(vec)
		}
	}
	if dim == 0 {
		return nil, ErrBatchFailed
	}
	for i, vec := range vectors {
		if len(vec) != dim {
			vectors[i] = make([]float32, dim)
		}
	}
	return vectors, nil
}

func (e *openAIEmbedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Encode(ctx, []string{text}, IntentQuery)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *openAIEmbedder) Identity() string {
	sum := sha256.Sum256([]byte(e.apiKey + "@" + e.baseURL))
	return fmt.Sprintf("openai/%s/%s", e.model, hex.EncodeToString(sum[:6]))
}

func createOpenAIFactory(args interface{}) (IProvider, error) {
	cfg := &OpenAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &openAIProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
	}, nil
}

func createOpenAIEmbedderFactory(args interface{}) (Embedder, error) {
	cfg := &OpenAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIEmbedModel
	}
	return &openAIEmbedder{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		model:   model,
	}, nil
}

func init() {
	Register("openai", createOpenAIFactory)
	RegisterEmbedder("openai", createOpenAIEmbedderFactory)
}
