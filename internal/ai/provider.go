package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Intent tells the embedding backend what the text will be used for.
type Intent string

const (
	IntentDocument Intent = "RETRIEVAL_DOCUMENT"
	IntentQuery    Intent = "RETRIEVAL_QUERY"
)

// IProvider is a generative-text backend (used by the translation bridge).
type IProvider interface {
	Name() string
	Generate(ctx context.Context, model string, prompt string) (string, error)
}

// IGenerator binds a provider to one model.
type IGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns texts into fixed-dimension vectors, one per input in input
// order. Identity distinguishes provider/model/credential configurations so
// index caches never mix vector spaces.
type Embedder interface {
	Encode(ctx context.Context, texts []string, intent Intent) ([][]float32, error)
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
	Identity() string
}

type generator struct {
	provider IProvider
	model    string
}

func NewGenerator(p IProvider, model string) IGenerator {
	if p == nil || model == "" {
		return nil
	}
	return &generator{provider: p, model: model}
}

func (g *generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.provider.Generate(ctx, g.model, prompt)
}

type ProviderFactory func(args interface{}) (IProvider, error)

type EmbedderFactory func(args interface{}) (Embedder, error)

var (
	registry      = map[string]ProviderFactory{}
	embedRegistry = map[string]EmbedderFactory{}
)

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func RegisterEmbedder(name string, factory EmbedderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	embedRegistry[key] = factory
}

func NewProvider(name string, args interface{}) (IProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func NewEmbedder(name string, args interface{}) (Embedder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("embedding provider is required")
	}
	factory := embedRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported embedding provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("ai provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}
