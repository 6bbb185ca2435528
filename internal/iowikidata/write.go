package iowikidata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gnames/gnfmt"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
)

// Login authenticates the bot account against the action API.
// MediaWiki wants a login token first, then the actual login; the
// session lives in cookies, the csrf token covers subsequent writes.
func (c *Client) Login(ctx context.Context, user, password string) error {
	loginToken, err := c.fetchToken(ctx, "login")
	if err != nil {
		return LoginError(user, err)
	}

	var res struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	err = c.postForm(ctx, "login", url.Values{
		"action":     {"login"},
		"lgname":     {user},
		"lgpassword": {password},
		"lgtoken":    {loginToken},
	}, &res)
	if err != nil {
		return LoginError(user, err)
	}
	if res.Login.Result != "Success" {
		return LoginError(user, fmt.Errorf("login result %q: %s",
			res.Login.Result, res.Login.Reason))
	}

	csrf, err := c.fetchToken(ctx, "csrf")
	if err != nil {
		return LoginError(user, err)
	}
	c.csrfToken = csrf
	return nil
}

// CreateClaim adds one ortholog statement: the claim itself, the OMA
// reference block, and a found-in-taxon qualifier. The three API calls
// are retried independently; a claim without its reference is still a
// valid statement, so partial success is acceptable and the error
// reports which step failed.
func (c *Client) CreateClaim(ctx context.Context, claim wikidata.Claim) error {
	claimID, err := c.createBareClaim(ctx, claim)
	if err != nil {
		return ClaimWriteError(claim.SubjectQID, claim.ObjectQID, err)
	}

	if err = c.setReference(ctx, claimID, claim); err != nil {
		return ClaimWriteError(claim.SubjectQID, claim.ObjectQID,
			fmt.Errorf("reference: %w", err))
	}

	if claim.TaxonQID != "" {
		if err = c.setQualifier(ctx, claimID, claim); err != nil {
			return ClaimWriteError(claim.SubjectQID, claim.ObjectQID,
				fmt.Errorf("qualifier: %w", err))
		}
	}
	return nil
}

// CheckURL reports whether a reference URL responds with a 2xx status.
func (c *Client) CheckURL(ctx context.Context, rawURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, urlCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) createBareClaim(
	ctx context.Context, claim wikidata.Claim,
) (string, error) {
	value := fmt.Sprintf(`{"entity-type":"item","numeric-id":%d}`,
		wikidata.NumericID(claim.ObjectQID))

	var res struct {
		Claim struct {
			ID string `json:"id"`
		} `json:"claim"`
	}
	err := c.postForm(ctx, "wbcreateclaim", url.Values{
		"action":   {"wbcreateclaim"},
		"entity":   {claim.SubjectQID},
		"property": {claim.Property},
		"snaktype": {"value"},
		"value":    {value},
		"summary":  {claim.Summary},
		"token":    {c.csrfToken},
		"bot":      {"1"},
		"maxlag":   {maxlagSeconds},
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Claim.ID == "" {
		return "", fmt.Errorf("wbcreateclaim returned no claim id")
	}
	return res.Claim.ID, nil
}

func (c *Client) setReference(
	ctx context.Context, claimID string, claim wikidata.Claim,
) error {
	snaks := fmt.Sprintf(
		`{"%s":[{"snaktype":"value","property":"%s","datavalue":{"type":"wikibase-entityid","value":{"entity-type":"item","numeric-id":%d}}}],`+
			`"%s":[{"snaktype":"value","property":"%s","datavalue":{"type":"string","value":"%s"}}]}`,
		wikidata.PropStatedIn, wikidata.PropStatedIn,
		wikidata.NumericID(claim.StatedInQID),
		wikidata.PropReferenceURL, wikidata.PropReferenceURL,
		claim.ReferenceURL,
	)

	var res struct {
		Reference struct {
			Hash string `json:"hash"`
		} `json:"reference"`
	}
	return c.postForm(ctx, "wbsetreference", url.Values{
		"action":    {"wbsetreference"},
		"statement": {claimID},
		"snaks":     {snaks},
		"token":     {c.csrfToken},
		"bot":       {"1"},
		"maxlag":    {maxlagSeconds},
	}, &res)
}

func (c *Client) setQualifier(
	ctx context.Context, claimID string, claim wikidata.Claim,
) error {
	value := fmt.Sprintf(`{"entity-type":"item","numeric-id":%d}`,
		wikidata.NumericID(claim.TaxonQID))

	var res struct{}
	return c.postForm(ctx, "wbsetqualifier", url.Values{
		"action":   {"wbsetqualifier"},
		"claim":    {claimID},
		"property": {wikidata.PropFoundInTaxon},
		"snaktype": {"value"},
		"value":    {value},
		"token":    {c.csrfToken},
		"bot":      {"1"},
		"maxlag":   {maxlagSeconds},
	}, &res)
}

func (c *Client) fetchToken(ctx context.Context, kind string) (string, error) {
	var res struct {
		Query struct {
			Tokens map[string]string `json:"tokens"`
		} `json:"query"`
	}
	err := c.postForm(ctx, "fetch token", url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {kind},
	}, &res)
	if err != nil {
		return "", err
	}
	token := res.Query.Tokens[kind+"token"]
	if token == "" {
		return "", fmt.Errorf("no %s token in response", kind)
	}
	return token, nil
}

// postForm posts a form-encoded action API request and decodes the JSON
// response into out, retrying transient failures. API-level errors
// ({"error":{...}}) are surfaced as apiError so the retry policy can
// distinguish maxlag/ratelimited from permanent failures.
func (c *Client) postForm(
	ctx context.Context, op string, form url.Values, out any,
) error {
	form.Set("format", "json")

	return c.withRetry(ctx, op, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.apiURL, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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

		var apiRes struct {
			Error *struct {
				Code string `json:"code"`
				Info string `json:"info"`
			} `json:"error"`
		}
		enc := gnfmt.GNjson{}
		if err = enc.Decode(body, &apiRes); err != nil {
			return err
		}
		if apiRes.Error != nil {
			return &apiError{Code: apiRes.Error.Code, Info: apiRes.Error.Info}
		}
		return enc.Decode(body, out)
	})
}
