package services

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/genai"
)

// Embedder encodes a text into a fixed-dimension vector. Implementations must
// be safe for concurrent use; one instance lives for the whole process.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const embedMaxChars = 40000

type geminiEmbedder struct {
	client *genai.Client
	model  string
	cache  *lru.Cache[string, []float32]
}

func NewGeminiEmbedder(apiKey string, cacheSize int) (Embedder, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}

	return &geminiEmbedder{
		client: client,
		model:  "text-embedding-004",
		cache:  cache,
	}, nil
}

// Embed implements Embedder. Repeated identical inputs within the process
// lifetime are served from a bounded LRU memo.
func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if len(text) > embedMaxChars {
		text = text[:embedMaxChars]
	}

	if vec, ok := g.cache.Get(text); ok {
		return vec, nil
	}

	result, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	vec := result.Embeddings[0].Values
	g.cache.Add(text, vec)
	return vec, nil
}
