package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// Registrations indexes submitted registrations so the table page can search them.
// Documents are keyed by CI, so a resubmission replaces the previous one.
type Registrations struct {
	es    *elasticsearch.Client
	index string
}

func NewRegistrations(es *elasticsearch.Client, index string) *Registrations {
	return &Registrations{es: es, index: index}
}

type document struct {
	entity.Registration
	SubmittedAt string `json:"submittedAt"`
}

func (s *Registrations) Index(ctx context.Context, r entity.Registration, at time.Time) error {
	b, err := json.Marshal(document{Registration: r, SubmittedAt: at.UTC().Format(time.RFC3339Nano)})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.index, DocumentID: r.CI, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// DeleteByCI removes the document for ci; a missing document is not an error.
func (s *Registrations) DeleteByCI(ctx context.Context, ci string) error {
	req := esapi.DeleteRequest{Index: s.index, DocumentID: ci}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search performs a multi_match over names, email and CI.
func (s *Registrations) Search(ctx context.Context, q string, size int) ([]entity.Registration, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"ci^3", "email^2", "firstName", "paternalLastName", "maternalLastName"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.es.Search(s.es.Search.WithContext(c), s.es.Search.WithIndex(s.index), s.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}
	return decodeHits(res.Body)
}
