package iowikidata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iowikidata"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, sparqlURL, apiURL string) *iowikidata.Client {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptWikidataSparqlURL(sparqlURL),
		config.OptWikidataAPIURL(apiURL),
		config.OptWikidataMaxRetries(3),
	})
	return iowikidata.New(cfg,
		iowikidata.WithRetryBackoff(time.Millisecond, 5*time.Millisecond),
		iowikidata.WithSleeper(func(time.Duration) {}),
	)
}

func TestIDMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Contains(t, r.Form.Get("query"), "wdt:P594")
			w.Write([]byte(`{"results":{"bindings":[
			{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q14818098"},
			 "id":{"type":"literal","value":"ENSG00000141510"}},
			{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q14911122"},
			 "id":{"type":"literal","value":"ENSMUSG00000059552"}},
			{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q99"},
			 "id":{"type":"literal","value":"ENSG00000141510"}}
			]}}`))
		}))
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	mapping, err := c.IDMap(context.Background(), wikidata.PropEnsemblGeneID)
	require.NoError(t, err)

	assert.Len(t, mapping, 2)
	// first mapping wins on duplicate external IDs
	assert.Equal(t, "Q14818098", mapping["ENSG00000141510"])
	assert.Equal(t, "Q14911122", mapping["ENSMUSG00000059552"])
}

func TestPropertyPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":{"bindings":[
			{"s":{"type":"uri","value":"http://www.wikidata.org/entity/Q1"},
			 "o":{"type":"uri","value":"http://www.wikidata.org/entity/Q2"}},
			{"s":{"type":"uri","value":"http://www.wikidata.org/entity/Q3"},
			 "o":{"type":"literal","value":"not-an-item"}}
			]}}`))
		}))
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	pairs, err := c.PropertyPairs(context.Background(), wikidata.PropOrtholog)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, [2]string{"Q1", "Q2"}, pairs[0])
}

func TestSparqlRetriesThrottling(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"results":{"bindings":[]}}`))
		}))
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	_, err := c.IDMap(context.Background(), wikidata.PropEnsemblGeneID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSparqlFatalAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	_, err := c.IDMap(context.Background(), wikidata.PropEnsemblGeneID)
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load(), "respects max retries")
}

// apiServer fakes the MediaWiki action API well enough for login and
// claim writes.
func apiServer(t *testing.T, failures *atomic.Int32) (*httptest.Server, *[]string) {
	t.Helper()
	var actions []string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			action := r.Form.Get("action")

			if action == "query" && r.Form.Get("meta") == "tokens" {
				kind := r.Form.Get("type")
				w.Write([]byte(`{"query":{"tokens":{"` + kind +
					`token":"` + kind + `-token+\\"}}}`))
				return
			}

			actions = append(actions, action)
			switch action {
			case "login":
				assert.Equal(t, "OrthoBot", r.Form.Get("lgname"))
				w.Write([]byte(`{"login":{"result":"Success"}}`))
			case "wbcreateclaim":
				if failures != nil && failures.Load() > 0 {
					failures.Add(-1)
					w.Write([]byte(`{"error":{"code":"maxlag","info":"lagged"}}`))
					return
				}
				assert.Equal(t, "csrf-token+\\", r.Form.Get("token"))
				w.Write([]byte(`{"claim":{"id":"Q14818098$ABC-123"}}`))
			case "wbsetreference":
				assert.Equal(t, "Q14818098$ABC-123", r.Form.Get("statement"))
				w.Write([]byte(`{"reference":{"hash":"h1"}}`))
			case "wbsetqualifier":
				assert.Equal(t, "P703", r.Form.Get("property"))
				w.Write([]byte(`{"success":1}`))
			default:
				t.Errorf("unexpected action %q", action)
			}
		}))
	return srv, &actions
}

func testClaim() wikidata.Claim {
	return wikidata.Claim{
		SubjectQID:   "Q14818098",
		Property:     wikidata.PropOrtholog,
		ObjectQID:    "Q14911122",
		ReferenceURL: "https://omabrowser.org/oma/vps/ENSG00000141510/",
		StatedInQID:  wikidata.ItemOMA,
		TaxonQID:     "Q83310",
		Summary:      "Add orthologs from OMA (Orthologous MAtrix) database",
	}
}

func TestLoginAndCreateClaim(t *testing.T) {
	srv, actions := apiServer(t, nil)
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "OrthoBot", "secret"))
	require.NoError(t, c.CreateClaim(ctx, testClaim()))

	assert.Equal(t,
		[]string{"login", "wbcreateclaim", "wbsetreference", "wbsetqualifier"},
		*actions)
}

func TestCreateClaimRetriesMaxlag(t *testing.T) {
	var failures atomic.Int32
	failures.Store(1)
	srv, _ := apiServer(t, &failures)
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "OrthoBot", "secret"))
	assert.NoError(t, c.CreateClaim(ctx, testClaim()),
		"maxlag is transient and retried")
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			if r.Form.Get("meta") == "tokens" {
				w.Write([]byte(`{"query":{"tokens":{"logintoken":"t"}}}`))
				return
			}
			w.Write([]byte(`{"login":{"result":"Failed","reason":"wrong password"}}`))
		}))
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	err := c.Login(context.Background(), "OrthoBot", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong password")
}

func TestCheckURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			if r.URL.Path == "/ok/" {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
	defer srv.Close()

	c := newClient(t, srv.URL, srv.URL)
	ctx := context.Background()
	assert.True(t, c.CheckURL(ctx, srv.URL+"/ok/"))
	assert.False(t, c.CheckURL(ctx, srv.URL+"/missing/"))
}
