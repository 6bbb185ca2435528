package iowikidata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gnames/gnfmt"
)

const entityPrefix = "http://www.wikidata.org/entity/"

// sparqlResponse mirrors the SPARQL 1.1 JSON results format.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// IDMap bulk-fetches every (external id, item) pair of a property.
// This is the equivalent of wdi_helpers.id_mapper in the Python
// WikidataIntegrator. Duplicate external IDs keep the first item seen.
func (c *Client) IDMap(
	ctx context.Context, property string,
) (map[string]string, error) {
	query := fmt.Sprintf(
		"SELECT ?item ?id WHERE { ?item wdt:%s ?id }", property)

	res, err := c.sparql(ctx, query)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]string, len(res.Results.Bindings))
	for _, b := range res.Results.Bindings {
		id := b["id"].Value
		item := strings.TrimPrefix(b["item"].Value, entityPrefix)
		if id == "" || item == "" {
			continue
		}
		if _, ok := mapping[id]; ok {
			continue
		}
		mapping[id] = item
	}
	slog.Info("Fetched ID mapping",
		"property", property, "size", len(mapping))
	return mapping, nil
}

// PropertyPairs bulk-fetches all (subject, object) item pairs of a
// property, e.g. every recorded ortholog statement.
func (c *Client) PropertyPairs(
	ctx context.Context, property string,
) ([][2]string, error) {
	query := fmt.Sprintf(
		"SELECT ?s ?o WHERE { ?s wdt:%s ?o }", property)

	res, err := c.sparql(ctx, query)
	if err != nil {
		return nil, err
	}

	pairs := make([][2]string, 0, len(res.Results.Bindings))
	for _, b := range res.Results.Bindings {
		subj := strings.TrimPrefix(b["s"].Value, entityPrefix)
		obj := strings.TrimPrefix(b["o"].Value, entityPrefix)
		if subj == "" || obj == "" || !strings.HasPrefix(obj, "Q") {
			continue
		}
		pairs = append(pairs, [2]string{subj, obj})
	}
	slog.Info("Fetched property statements",
		"property", property, "count", len(pairs))
	return pairs, nil
}

// sparql posts a query to WDQS and decodes the JSON result, retrying
// transient failures. WDQS throttles aggressive clients, so 429s with
// Retry-After are expected under load.
func (c *Client) sparql(
	ctx context.Context, query string,
) (*sparqlResponse, error) {
	var res sparqlResponse

	err := c.withRetry(ctx, "sparql query", func() error {
		form := url.Values{"query": {query}}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.sparqlURL, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/sparql-results+json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return &httpStatusError{
				StatusCode: resp.StatusCode,
				Body:       snippet(body),
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
		}

		res = sparqlResponse{}
		enc := gnfmt.GNjson{}
		return enc.Decode(body, &res)
	})
	if err != nil {
		return nil, SparqlQueryError(err)
	}
	return &res, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
