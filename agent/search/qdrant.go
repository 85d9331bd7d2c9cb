package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
)

// Config holds the vector index connection settings.
type Config struct {
	// URL is the Qdrant server address (e.g., "https://example.qdrant.io:6334").
	URL    string `envconfig:"URL" split_words:"true"`
	APIKey string `envconfig:"API_KEY" split_words:"true"`

	FAQCollection     string `envconfig:"FAQ_COLLECTION" split_words:"true" default:"sierra_faq"`
	ProductCollection string `envconfig:"PRODUCT_COLLECTION" split_words:"true" default:"sierra_products"`

	// MinScore drops weak matches; TopK bounds FAQ retrieval.
	MinScore float32 `envconfig:"MIN_SCORE" split_words:"true" default:"0.35"`
	TopK     int     `envconfig:"TOP_K" split_words:"true" default:"3"`
}

// Qdrant answers semantic queries over the FAQ and product collections,
// embedding query text through the injected embedder.
type Qdrant struct {
	client   *qdrant.Client
	embedder contractx.Embedder
	cfg      Config
}

var _ contractx.VectorSearcher = (*Qdrant)(nil)

func New(cfg Config, embedder contractx.Embedder) (*Qdrant, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	parsedURL := cfg.URL
	if !strings.HasPrefix(parsedURL, "http://") && !strings.HasPrefix(parsedURL, "https://") {
		parsedURL = "https://" + parsedURL
	}
	u, err := url.Parse(parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qdrant url: %w", err)
	}

	host := u.Hostname()
	port := 6334
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		port = p
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Qdrant{client: client, embedder: embedder, cfg: cfg}, nil
}

func (q *Qdrant) Close() error {
	return q.client.Close()
}

// SearchFAQ returns the matched FAQ passages joined into one block of
// context, or "" when nothing clears the score threshold.
func (q *Qdrant) SearchFAQ(ctx context.Context, query string) (string, error) {
	points, err := q.query(ctx, q.cfg.FAQCollection, query, q.cfg.TopK)
	if err != nil {
		return "", err
	}

	var texts []string
	for _, point := range points {
		if q.cfg.MinScore > 0 && point.Score < q.cfg.MinScore {
			continue
		}
		if text := point.Payload["text"].GetStringValue(); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n\n"), nil
}

// SearchProducts returns the topK closest products to the query.
func (q *Qdrant) SearchProducts(ctx context.Context, query string, topK int) ([]contractx.ProductMatch, error) {
	if topK <= 0 {
		topK = q.cfg.TopK
	}
	points, err := q.query(ctx, q.cfg.ProductCollection, query, topK)
	if err != nil {
		return nil, err
	}

	matches := make([]contractx.ProductMatch, 0, len(points))
	for _, point := range points {
		if q.cfg.MinScore > 0 && point.Score < q.cfg.MinScore {
			continue
		}
		match := contractx.ProductMatch{
			SKU:         point.Payload["sku"].GetStringValue(),
			ProductName: point.Payload["product_name"].GetStringValue(),
			Description: point.Payload["description"].GetStringValue(),
			Inventory:   int(point.Payload["inventory"].GetIntegerValue()),
			Score:       point.Score,
		}
		if list := point.Payload["tags"].GetListValue(); list != nil {
			for _, v := range list.Values {
				if s := v.GetStringValue(); s != "" {
					match.Tags = append(match.Tags, s)
				}
			}
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (q *Qdrant) query(ctx context.Context, collection, text string, limit int) ([]*qdrant.ScoredPoint, error) {
	vector, err := q.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	limitUint64 := uint64(limit)
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limitUint64,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}
	return points, nil
}
