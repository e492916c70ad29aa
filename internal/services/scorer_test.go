package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleCV = "Built web apps using Angular and JavaScript for 40 clients"
	sampleJD = "We need a React developer with GraphQL and TypeScript experience"
)

func TestTokenSetScorer(t *testing.T) {
	norm := NewNormalizer(80)
	scorer := NewTokenSetScorer(norm)
	ctx := context.Background()

	t.Run("identical texts score 100", func(t *testing.T) {
		score, err := scorer.Score(ctx, sampleJD, sampleJD)
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)
	})

	t.Run("word order does not matter", func(t *testing.T) {
		a := "golang docker kubernetes terraform"
		b := "terraform kubernetes docker golang"
		score, err := scorer.Score(ctx, a, b)
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)
	})

	t.Run("empty input scores zero without error", func(t *testing.T) {
		for _, pair := range [][2]string{{"", sampleJD}, {sampleCV, ""}, {"", ""}} {
			score, err := scorer.Score(ctx, pair[0], pair[1])
			require.NoError(t, err)
			assert.Equal(t, 0.0, score)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		ab, err := scorer.Score(ctx, sampleCV, sampleJD)
		require.NoError(t, err)
		ba, err := scorer.Score(ctx, sampleJD, sampleCV)
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("bounded", func(t *testing.T) {
		pairs := [][2]string{
			{sampleCV, sampleJD},
			{"a", "completely different text about gardening"},
			{"x y z", "x y z w"},
		}
		for _, pair := range pairs {
			score, err := scorer.Score(ctx, pair[0], pair[1])
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	})
}

func TestTFIDFScorer(t *testing.T) {
	norm := NewNormalizer(80)
	scorer := NewTFIDFScorer(norm)
	ctx := context.Background()

	t.Run("identical texts score 100", func(t *testing.T) {
		score, err := scorer.Score(ctx, sampleJD, sampleJD)
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)
	})

	t.Run("disjoint vocabularies score zero", func(t *testing.T) {
		score, err := scorer.Score(ctx, "alpha beta gamma", "delta epsilon zeta")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("empty input scores zero without error", func(t *testing.T) {
		score, err := scorer.Score(ctx, "", sampleJD)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("stop-word-only text scores zero", func(t *testing.T) {
		score, err := scorer.Score(ctx, "the and of", sampleJD)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("symmetric over two documents", func(t *testing.T) {
		ab, err := scorer.Score(ctx, sampleCV, sampleJD)
		require.NoError(t, err)
		ba, err := scorer.Score(ctx, sampleJD, sampleCV)
		require.NoError(t, err)
		assert.InDelta(t, ab, ba, 0.001)
	})

	t.Run("partial overlap lands strictly between", func(t *testing.T) {
		score, err := scorer.Score(ctx, "python sql tableau", "python sql excel")
		require.NoError(t, err)
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 100.0)
	})
}

// stubEmbedder returns canned vectors so the embedding scorer is testable
// without network access.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vec, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for %q", text)
	}
	return vec, nil
}

func TestEmbeddingScorer(t *testing.T) {
	norm := NewNormalizer(80)
	ctx := context.Background()

	t.Run("identical vectors score 100", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			"same text": {0.1, 0.2, 0.3},
		}}
		scorer := NewEmbeddingScorer(norm, embedder)

		score, err := scorer.Score(ctx, "Same text!", "same   TEXT")
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			"first":  {1, 0},
			"second": {0, 1},
		}}
		scorer := NewEmbeddingScorer(norm, embedder)

		score, err := scorer.Score(ctx, "first", "second")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("negative cosine clamps to zero", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			"first":  {1, 0},
			"second": {-1, 0},
		}}
		scorer := NewEmbeddingScorer(norm, embedder)

		score, err := scorer.Score(ctx, "first", "second")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("empty input skips the encoder", func(t *testing.T) {
		scorer := NewEmbeddingScorer(norm, &stubEmbedder{err: fmt.Errorf("should not be called")})

		score, err := scorer.Score(ctx, "", "anything")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("encoder failure surfaces", func(t *testing.T) {
		scorer := NewEmbeddingScorer(norm, &stubEmbedder{err: fmt.Errorf("quota exceeded")})

		_, err := scorer.Score(ctx, "first", "second")
		require.Error(t, err)
	})
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{55.555, 55.56},
		{100, 100},
		{100.0000001, 100},
		{130, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampScore(tt.in), "clampScore(%v)", tt.in)
	}
}
