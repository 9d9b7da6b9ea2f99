package ai

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// LocalConfig points at a locally resident multilingual sentence-encoder
// exported to ONNX plus its tokenizer.json.
type LocalConfig struct {
	OrtLibrary    string `json:"ort_library"`
	ModelPath     string `json:"model_path"`
	TokenizerPath string `json:"tokenizer_path"`
	MaxSeqLen     int    `json:"max_seq_len"`
}

var ortInitOnce sync.Once

// localEmbedder runs the model in-process; once the session is up it is
// assumed to succeed, so there is no retry or zero-fill path here.
type localEmbedder struct {
	mu        sync.Mutex
	session   *ort.DynamicAdvancedSession
	tk        *tokenizer.Tokenizer
	maxSeqLen int
	identity  string
}

func newLocalEmbedder(cfg LocalConfig) (*localEmbedder, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, fmt.Errorf("local embedder requires model_path and tokenizer_path")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 128
	}
	var initErr error
	ortInitOnce.Do(func() {
		if cfg.OrtLibrary != "" {
			ort.SetSharedLibraryPath(cfg.OrtLibrary)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("init onnxruntime: %w", initErr)
	}
	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("open onnx session: %w", err)
	}
	return &localEmbedder{
		session:   session,
		tk:        tk,
		maxSeqLen: cfg.MaxSeqLen,
		identity:  "local/" + filepath.Base(cfg.ModelPath),
	}, nil
}

func (e *localEmbedder) Encode(ctx context.Context, texts []string, _ Intent) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := e.encodeOne(text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (e *localEmbedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Encode(ctx, []string{text}, IntentQuery)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *localEmbedder) Identity() string {
	return e.identity
}

func (e *localEmbedder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
}

func (e *localEmbedder) encodeOne(text string) ([]float32, error) {
	enc, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	ids := enc.GetIds()
	mask := enc.GetAttentionMask()
	typeIds := enc.GetTypeIds()
	if len(ids) > e.maxSeqLen {
		ids = ids[:e.maxSeqLen]
		mask = mask[:e.maxSeqLen]
		typeIds = typeIds[:e.maxSeqLen]
	}
	seqLen := len(ids)
	if seqLen == 0 {
		return nil, fmt.Errorf("tokenizer produced no tokens")
	}

	idsData := make([]int64, seqLen)
	maskData := make([]int64, seqLen)
	typeData := make([]int64, seqLen)
	for i := 0; i < seqLen; i++ {
		idsData[i] = int64(ids[i])
		maskData[i] = int64(mask[i])
		typeData[i] = int64(typeIds[i])
	}

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor(shape, idsData)
	if err != nil {
		return nil, err
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, maskData)
	if err != nil {
		return nil, err
	}
	defer maskTensor.Destroy()
	typeTensor, err := ort.NewTensor(shape, typeData)
	if err != nil {
		return nil, err
	}
	defer typeTensor.Destroy()

	outputs := []ort.Value{nil}
	e.mu.Lock()
	runErr := e.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs)
	e.mu.Unlock()
	if runErr != nil {
		return nil, fmt.Errorf("onnx run: %w", runErr)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}
	defer hidden.Destroy()

	dims := hidden.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", dims)
	}
	hiddenSize := int(dims[2])
	return meanPool(hidden.GetData(), maskData, seqLen, hiddenSize), nil
}

// meanPool averages token states under the attention mask and L2-normalizes
// the result, matching sentence-transformers pooling.
func meanPool(states []float32, mask []int64, seqLen, hiddenSize int) []float32 {
	pooled := make([]float32, hiddenSize)
	var count float32
	for t := 0; t < seqLen; t++ {
		if mask[t] == 0 {
			continue
		}
		count++
		base := t * hiddenSize
		for h := 0; h < hiddenSize; h++ {
			pooled[h] += states[base+h]
		}
	}
	if count == 0 {
		return pooled
	}
	var norm float64
	for h := range pooled {
		pooled[h] /= count
		norm += float64(pooled[h]) * float64(pooled[h])
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for h := range pooled {
			pooled[h] *= inv
		}
	}
	return pooled
}

func createLocalEmbedderFactory(args interface{}) (Embedder, error) {
	cfg := &LocalConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	return newLocalEmbedder(*cfg)
}

func init() {
	RegisterEmbedder("local", createLocalEmbedderFactory)
}
