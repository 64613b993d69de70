// Package es wraps the Elasticsearch client used as an optional knowledge-base store.
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gramhealth-go/internal/config"
	"gramhealth-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ESClient is the process-wide client, set by InitES.
var ESClient *elasticsearch.Client

// knowledgeMapping stores disease documents as-is; only the titles are searchable text.
const knowledgeMapping = `{
	"mappings": {
		"dynamic": false,
		"properties": {
			"title_en": { "type": "text" },
			"title_ta": { "type": "text" }
		}
	}
}`

// InitES creates the client and makes sure the knowledge-base index exists.
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: strings.Split(esCfg.Addresses, ","),
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("checking index %q failed: %v", indexName, err)
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		log.Infof("index '%s' already exists", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d checking index %s", res.StatusCode, indexName)
	}

	created, err := ESClient.Indices.Create(indexName, ESClient.Indices.Create.WithBody(strings.NewReader(knowledgeMapping)))
	if err != nil {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	defer created.Body.Close()
	if created.IsError() {
		log.Errorf("creating index '%s' returned: %s", indexName, created.String())
		return errors.New("elasticsearch rejected index creation")
	}
	log.Infof("index '%s' created", indexName)
	return nil
}

// IndexDocument stores doc under docID, replacing any previous version.
func IndexDocument(ctx context.Context, indexName, docID string, doc interface{}) error {
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: docID,
		Body:       bytes.NewReader(docBytes),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("indexing document %q failed: %s", docID, res.String())
		return fmt.Errorf("failed to index document %s", docID)
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// FetchAll returns up to size documents from indexName keyed by document ID.
func FetchAll(ctx context.Context, indexName string, size int) (map[string]json.RawMessage, error) {
	query := `{"query": {"match_all": {}}}`
	res, err := ESClient.Search(
		ESClient.Search.WithContext(ctx),
		ESClient.Search.WithIndex(indexName),
		ESClient.Search.WithBody(strings.NewReader(query)),
		ESClient.Search.WithSize(size),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", indexName, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search %s returned %s: %s", indexName, res.Status(), string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	out := make(map[string]json.RawMessage, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out[hit.ID] = hit.Source
	}
	return out, nil
}
