package services

import (
	"context"
	"fmt"
	"math"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer computes a similarity score between a CV and a job description.
// Results are always in [0,100], rounded to two decimal places.
type Scorer interface {
	Name() string
	Score(ctx context.Context, cvText, jdText string) (float64, error)
}

// clampScore bounds a raw score to [0,100] and rounds to two decimals, even
// under floating point error.
func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v*100) / 100
	return math.Min(100, math.Max(0, v))
}

// tokenSetScorer is the order-independent token overlap ratio the original
// matcher shipped with. Symmetric in its inputs.
type tokenSetScorer struct {
	norm *Normalizer
}

func NewTokenSetScorer(norm *Normalizer) Scorer {
	return &tokenSetScorer{norm: norm}
}

func (s *tokenSetScorer) Name() string { return "token_set" }

func (s *tokenSetScorer) Score(_ context.Context, cvText, jdText string) (float64, error) {
	cv := s.norm.Normalize(cvText)
	jd := s.norm.Normalize(jdText)
	if cv == "" || jd == "" {
		return 0, nil
	}
	return clampScore(float64(fuzzy.TokenSetRatio(cv, jd))), nil
}

// tfidfScorer builds a term-frequency/inverse-document-frequency space over
// exactly the two documents and scales their cosine similarity to 0-100.
type tfidfScorer struct {
	norm *Normalizer
}

func NewTFIDFScorer(norm *Normalizer) Scorer {
	return &tfidfScorer{norm: norm}
}

func (s *tfidfScorer) Name() string { return "tfidf" }

func (s *tfidfScorer) Score(_ context.Context, cvText, jdText string) (float64, error) {
	cvTokens := s.norm.Tokenize(cvText)
	jdTokens := s.norm.Tokenize(jdText)
	if len(cvTokens) == 0 || len(jdTokens) == 0 {
		return 0, nil
	}

	cvTF := termFrequencies(cvTokens)
	jdTF := termFrequencies(jdTokens)

	vocab := make([]string, 0, len(cvTF)+len(jdTF))
	seen := make(map[string]struct{}, len(cvTF)+len(jdTF))
	for _, tf := range []map[string]float64{cvTF, jdTF} {
		for term := range tf {
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				vocab = append(vocab, term)
			}
		}
	}
	if len(vocab) == 0 {
		return 0, nil
	}

	cvVec := make([]float64, len(vocab))
	jdVec := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0.0
		if cvTF[term] > 0 {
			df++
		}
		if jdTF[term] > 0 {
			df++
		}
		// Smoothed IDF over the two-document corpus.
		idf := math.Log(3.0/(1.0+df)) + 1.0
		cvVec[i] = cvTF[term] * idf
		jdVec[i] = jdTF[term] * idf
	}

	return clampScore(cosine(cvVec, jdVec) * 100), nil
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	for t := range tf {
		tf[t] /= float64(len(tokens))
	}
	return tf
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// embeddingScorer scales the cosine similarity of two sentence embeddings to
// 0-100. Synonyms and paraphrases score higher here than under the lexical
// strategies.
type embeddingScorer struct {
	norm     *Normalizer
	embedder Embedder
}

func NewEmbeddingScorer(norm *Normalizer, embedder Embedder) Scorer {
	return &embeddingScorer{norm: norm, embedder: embedder}
}

func (s *embeddingScorer) Name() string { return "embedding" }

func (s *embeddingScorer) Score(ctx context.Context, cvText, jdText string) (float64, error) {
	cv := s.norm.Normalize(cvText)
	jd := s.norm.Normalize(jdText)
	if cv == "" || jd == "" {
		return 0, nil
	}

	cvVec, err := s.embedder.Embed(ctx, cv)
	if err != nil {
		return 0, fmt.Errorf("failed to embed CV text: %w", err)
	}
	jdVec, err := s.embedder.Embed(ctx, jd)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job text: %w", err)
	}
	if len(cvVec) != len(jdVec) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(cvVec), len(jdVec))
	}

	return clampScore(cosine32(cvVec, jdVec) * 100), nil
}

func cosine32(a, b []float32) float64 {
	af := make([]float64, len(a))
	bf := make([]float64, len(b))
	for i := range a {
		af[i] = float64(a[i])
		bf[i] = float64(b[i])
	}
	return cosine(af, bf)
}
