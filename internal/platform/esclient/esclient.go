// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package esclient is the Loader stage's HTTP client for the search-index
bulk endpoint (spec §5, Loader).

It is grounded on the original pipeline's ESHandler/ESLoader: a document
batch is encoded as newline-delimited JSON action/document pairs and POSTed
to "{index_url}/_bulk", then the response's per-item array is walked for
index failures. Unlike the original, a transport failure here is classified
through [apperr] so [retry.Do] can distinguish it from a malformed document.
*/
package esclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/trandinhkhoi/filmsync/internal/platform/apperr"
)

// Document is any value the Loader can index: it must be able to report the
// search-index document ID it should be stored under.
type Document interface {
	DocumentID() string
}

// Client is a thin wrapper around resty.Client scoped to one index.
type Client struct {
	http  *resty.Client
	index string
}

// New returns a client that posts to baseURL/_bulk and names index in
// every action line.
func New(baseURL, index string) *Client {
	http := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))
	return &Client{http: http, index: index}
}

// bulkAction is the "index" action header line of a single ndjson pair.
type bulkAction struct {
	Index bulkActionMeta `json:"index"`
}

type bulkActionMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

// bulkResponse mirrors the subset of Elasticsearch's bulk response this
// client inspects.
type bulkResponse struct {
	Items []struct {
		Index struct {
			ID    string          `json:"_id"`
			Error json.RawMessage `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// ItemError is a single document's indexing failure, reported by Bulk so
// the Loader can classify it as [apperr.KindDataItem] (spec §7.2) without
// aborting the rest of the batch.
type ItemError struct {
	DocumentID string
	Detail     string
}

// BulkResult is the outcome of one Bulk call.
type BulkResult struct {
	// Indexed is the number of documents the bulk request attempted.
	Indexed int
	// Errors lists the documents Elasticsearch itself rejected.
	Errors []ItemError
}

// Bulk encodes docs as ndjson and POSTs them to the index's _bulk endpoint.
//
// A transport error or a 5xx response is classified transient: the whole
// batch is safe to retry since nothing was necessarily persisted. A 4xx
// response is classified Logic (spec §5/§7.1: "4xx responses... are
// non-retried and surfaced via logs") — retrying a malformed request under
// backoff would just repeat the same failure. Per-document index errors
// inside a 2xx response are a third, separate case — they are returned in
// BulkResult.Errors for the Loader to log and skip.
func (c *Client) Bulk(ctx context.Context, docs []Document) (*BulkResult, error) {
	if len(docs) == 0 {
		return &BulkResult{}, nil
	}

	body, err := c.encode(docs)
	if err != nil {
		return nil, apperr.Logic("esclient: encode bulk body", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-ndjson").
		SetBody(body).
		Post("/_bulk")
	if err != nil {
		return nil, apperr.Transient("esclient: bulk request", err)
	}
	if resp.IsError() {
		statusErr := fmt.Errorf("status %s: %s", resp.Status(), resp.String())
		if resp.StatusCode() >= 500 {
			return nil, apperr.Transient("esclient: bulk request", statusErr)
		}
		return nil, apperr.Logic("esclient: bulk request", statusErr)
	}

	var parsed bulkResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, apperr.Transient("esclient: decode bulk response", err)
	}

	result := &BulkResult{Indexed: len(docs)}
	for _, item := range parsed.Items {
		if len(item.Index.Error) == 0 {
			continue
		}
		result.Errors = append(result.Errors, ItemError{
			DocumentID: item.Index.ID,
			Detail:     string(item.Index.Error),
		})
	}

	return result, nil
}

// encode builds the ndjson action/document pair sequence the _bulk endpoint
// expects: one "index" action line followed by the document's own JSON.
func (c *Client) encode(docs []Document) ([]byte, error) {
	var sb strings.Builder

	for _, doc := range docs {
		action := bulkAction{Index: bulkActionMeta{Index: c.index, ID: doc.DocumentID()}}
		actionLine, err := json.Marshal(action)
		if err != nil {
			return nil, err
		}
		docLine, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}

		sb.Write(actionLine)
		sb.WriteByte('\n')
		sb.Write(docLine)
		sb.WriteByte('\n')
	}

	return []byte(sb.String()), nil
}
