package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/newscrawl/internal/article"
)

// DefaultElasticIndex is the index article records land in.
const DefaultElasticIndex = "news_articles"

// Elastic indexes records with the url_hash as document id, so re-crawling a
// page overwrites its previous version instead of duplicating it.
type Elastic struct {
	addresses []string
	index     string
	client    *es.Client
}

// NewElastic builds an Elasticsearch sink. An empty index uses
// DefaultElasticIndex.
func NewElastic(addresses []string, index string) *Elastic {
	if index == "" {
		index = DefaultElasticIndex
	}
	return &Elastic{addresses: addresses, index: index}
}

// Open connects and pings the cluster.
func (s *Elastic) Open(ctx context.Context) error {
	client, err := es.NewClient(es.Config{Addresses: s.addresses})
	if err != nil {
		return fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	res, err := client.Ping(client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", res.String())
	}

	s.client = client
	return nil
}

// Send indexes one record under its url_hash.
func (s *Elastic) Send(ctx context.Context, record *article.Record) error {
	if s.client == nil {
		return fmt.Errorf("elastic sink not open")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	res, err := s.client.Index(s.index, bytes.NewReader(payload),
		s.client.Index.WithDocumentID(record.URLHash),
		s.client.Index.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to index record: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("failed to index record: %s", res.String())
	}
	return nil
}

// Close releases the client.
func (s *Elastic) Close() error {
	s.client = nil
	return nil
}
