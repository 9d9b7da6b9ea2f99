package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	out string
	err error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.out, s.err
}

type stubEmbedder struct {
	id  string
	vec []float32
	err error
}

func (s *stubEmbedder) Encode(ctx context.Context, texts []string, intent Intent) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vec
	}
	return out, nil
}

func (s *stubEmbedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubEmbedder) Identity() string {
	return s.id
}

func TestGroupGeneratorFallsThroughOnError(t *testing.T) {
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "primary", Generator: &stubGenerator{err: errors.New("overloaded")}},
		{Name: "backup", Generator: &stubGenerator{out: "translated"}},
	})
	out, err := group.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "translated", out)
}

func TestGroupGeneratorReturnsLastError(t *testing.T) {
	wantErr := errors.New("backup also down")
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "primary", Generator: &stubGenerator{err: errors.New("overloaded")}},
		{Name: "backup", Generator: &stubGenerator{err: wantErr}},
	})
	_, err := group.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, wantErr)
}

func TestGroupGeneratorSingleEntryUnwraps(t *testing.T) {
	only := &stubGenerator{out: "x"}
	group := NewGroupGenerator([]GeneratorEntry{{Name: "only", Generator: only}})
	require.Equal(t, IGenerator(only), group)
	require.Nil(t, NewGroupGenerator(nil))
}

func TestGroupEmbedderFallsThroughOnError(t *testing.T) {
	group := NewGroupEmbedder([]EmbedderEntry{
		{Name: "primary", Embedder: &stubEmbedder{id: "a", err: errors.New("down")}},
		{Name: "backup", Embedder: &stubEmbedder{id: "b", vec: []float32{1, 2}}},
	})
	vectors, err := group.Encode(context.Background(), []string{"x", "y"}, IntentDocument)
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	require.Equal(t, []float32{1, 2}, vectors[0])

	vec, err := group.EncodeQuery(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2}, vec)
}

func TestGroupEmbedderIdentityJoinsMembers(t *testing.T) {
	group := NewGroupEmbedder([]EmbedderEntry{
		{Name: "primary", Embedder: &stubEmbedder{id: "a"}},
		{Name: "backup", Embedder: &stubEmbedder{id: "b"}},
	})
	require.Equal(t, "a|b", group.Identity())
}
