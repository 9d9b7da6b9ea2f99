package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConfig configures both the generative and the embedding side of the
// Gemini provider.
type GeminiConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

const (
	defaultEmbedModel  = "text-embedding-004"
	embedMaxAttempts   = 3
	embedRetryBaseWait = 600 * time.Millisecond
)

type geminiProvider struct {
	apiKey string
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// geminiEmbedder calls the remote embedding endpoint one text at a time with
// a bounded retry budget. A text whose retries are exhausted degrades to an
// all-zero vector so the matrix shape stays consistent; the batch only fails
// when no text at all produced a vector.
type geminiEmbedder struct {
	apiKey string
	model  string
	sleep  SleepFunc
	// embedFn defaults to embedOne; tests swap in a fake endpoint.
	embedFn func(ctx context.Context, text string, intent Intent) ([]float32, error)
}

func (e *geminiEmbedder) embedOne(ctx context.Context, text string, intent Intent) ([]float32, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	resp, err := client.Models.EmbedContent(
		ctx,
		e.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: text}}}},
		&genai.EmbedContentConfig{TaskType: string(intent)},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("no embedding values returned")
	}
	return resp.Embeddings[0].Values, nil
}

func (e *geminiEmbedder) Encode(ctx context.Context, texts []string, intent Intent) ([][]float32, error) {
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
			vec, embedErr = embedFn(ctx, text, intent)
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

func (e *geminiEmbedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Encode(ctx, []string{text}, IntentQuery)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *geminiEmbedder) Identity() string {
	sum := sha256.Sum256([]byte(e.apiKey))
	return fmt.Sprintf("gemini/%s/%s", e.model, hex.EncodeToString(sum[:6]))
}

func createGeminiFactory(args interface{}) (IProvider, error) {
	cfg := &GeminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	return &geminiProvider{apiKey: strings.TrimSpace(cfg.APIKey)}, nil
}

func createGeminiEmbedderFactory(args interface{}) (Embedder, error) {
	cfg := &GeminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultEmbedModel
	}
	return &geminiEmbedder{
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  model,
	}, nil
}

func init() {
	Register("gemini", createGeminiFactory)
	RegisterEmbedder("gemini", createGeminiEmbedderFactory)
}
