package similarity

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config holds configuration for the Gemini similarity provider.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

const (
	defaultEmbeddingModel = "text-embedding-004"
	defaultCallTimeout    = 5 * time.Second
)

// Gemini judges similarity by embedding both column names with the Gemini
// embedding model and taking the cosine of the vectors. Embeddings are
// cached per name, so a request scoring n columns makes at most n remote
// calls.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	cache map[string][]float32
}

// NewGemini creates a Gemini-backed provider.
func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("cannot create Gemini similarity provider: API key is missing")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = defaultEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
		cache:   make(map[string][]float32),
	}, nil
}

// Close cleans up the underlying Gemini client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Similarity embeds both names and returns their cosine similarity,
// clamped to [0,1]. Backend failures come back as ProviderError so the
// caller can fall back.
func (g *Gemini) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := g.embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := g.embed(ctx, b)
	if err != nil {
		return 0, err
	}
	sim := cosine(va, vb)
	if sim < 0 {
		sim = 0
	} else if sim > 1 {
		sim = 1
	}
	return sim, nil
}

func (g *Gemini) embed(ctx context.Context, name string) ([]float32, error) {
	g.mu.Lock()
	if v, ok := g.cache[name]; ok {
		g.mu.Unlock()
		return v, nil
	}
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	em := g.client.EmbeddingModel(g.model)
	resp, err := em.EmbedContent(ctx, genai.Text(name))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &ProviderError{Msg: fmt.Sprintf("embedding call timed out after %v", g.timeout), Err: err}
		}
		if st, ok := status.FromError(err); ok {
			switch st.Code() {
			case codes.Unauthenticated, codes.PermissionDenied:
				return nil, &ProviderError{Msg: "invalid Gemini API key or insufficient permissions", Err: err}
			}
		}
		return nil, &ProviderError{Msg: fmt.Sprintf("embedding call failed for %q", name), Err: err}
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &ProviderError{Msg: fmt.Sprintf("empty embedding response for %q", name)}
	}

	g.mu.Lock()
	g.cache[name] = resp.Embedding.Values
	g.mu.Unlock()
	return resp.Embedding.Values, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
