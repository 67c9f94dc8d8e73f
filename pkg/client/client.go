package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Orkadia backend: a PostgREST table API under /rest/v1
// and an auth API under /auth/v1.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
}

// New creates a new API client. apiKey is the project's public anon key;
// token is the signed-in citizen's access token and may be empty.
func New(baseURL, apiKey, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the access token the client sends.
func (c *Client) Token() string {
	return c.token
}

// RPC calls a database function exposed at /rest/v1/rpc/{fn}.
func (c *Client) RPC(ctx context.Context, fn string, args any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	if _, err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/rpc/" + url.PathEscape(fn),
		body:   args,
		out:    out,
	}); err != nil {
		return fmt.Errorf("client.RPC %s: %w", fn, err)
	}
	return nil
}

// Query is a PostgREST request against one table. Filters accumulate;
// a terminal method (Get, Single, Count, Insert, Update, Delete) sends it.
type Query struct {
	c      *Client
	table  string
	params url.Values
}

// From starts a query against table.
func (c *Client) From(table string) *Query {
	return &Query{c: c, table: table, params: url.Values{}}
}

// Select sets the projection, including embedded relations,
// e.g. "*,achievement:achievements(*)".
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

func (q *Query) filter(col, op string, v any) *Query {
	q.params.Add(col, op+"."+formatValue(v))
	return q
}

// Eq filters rows where col equals v.
func (q *Query) Eq(col string, v any) *Query { return q.filter(col, "eq", v) }

// Neq filters rows where col differs from v.
func (q *Query) Neq(col string, v any) *Query { return q.filter(col, "neq", v) }

// Gt filters rows where col is greater than v.
func (q *Query) Gt(col string, v any) *Query { return q.filter(col, "gt", v) }

// Gte filters rows where col is at least v.
func (q *Query) Gte(col string, v any) *Query { return q.filter(col, "gte", v) }

// Lt filters rows where col is less than v.
func (q *Query) Lt(col string, v any) *Query { return q.filter(col, "lt", v) }

// Is filters on IS NULL / IS TRUE / IS FALSE. v must be "null", "true" or "false".
func (q *Query) Is(col, v string) *Query { return q.filter(col, "is", v) }

// In filters rows where col is one of values.
func (q *Query) In(col string, values ...any) *Query {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return q.filter(col, "in", "("+strings.Join(parts, ",")+")")
}

// Or adds a PostgREST or=(...) filter, e.g. "and(a.eq.1,b.eq.2),and(a.eq.2,b.eq.1)".
func (q *Query) Or(expr string) *Query {
	q.params.Add("or", "("+expr+")")
	return q
}

// Order sorts by col. Multiple calls append sort keys.
func (q *Query) Order(col string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	term := col + "." + dir
	if prev := q.params.Get("order"); prev != "" {
		term = prev + "," + term
	}
	q.params.Set("order", term)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

func (q *Query) path() string {
	p := "/rest/v1/" + url.PathEscape(q.table)
	if enc := q.params.Encode(); enc != "" {
		p += "?" + enc
	}
	return p
}

// Get decodes all matching rows into out, which must point to a slice.
func (q *Query) Get(ctx context.Context, out any) error {
	if _, err := q.c.doRequest(ctx, request{method: http.MethodGet, path: q.path(), out: out}); err != nil {
		return fmt.Errorf("client.Get %s: %w", q.table, err)
	}
	return nil
}

// Single decodes exactly one matching row into out.
// It returns ErrNoRows when nothing matched.
func (q *Query) Single(ctx context.Context, out any) error {
	_, err := q.c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   q.path(),
		accept: singleObject,
		out:    out,
	})
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("client.Single %s: %w", q.table, ErrNoRows)
		}
		return fmt.Errorf("client.Single %s: %w", q.table, err)
	}
	return nil
}

// Count returns the exact number of matching rows without fetching them.
func (q *Query) Count(ctx context.Context) (int, error) {
	q.params.Set("select", "*")
	q.params.Set("limit", "0")
	header, err := q.c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   q.path(),
		prefer: []string{"count=exact"},
	})
	if err != nil {
		return 0, fmt.Errorf("client.Count %s: %w", q.table, err)
	}
	n, err := parseContentRange(header.Get("Content-Range"))
	if err != nil {
		return 0, fmt.Errorf("client.Count %s: %w", q.table, err)
	}
	return n, nil
}

// Insert creates row. When out is non-nil the created row is decoded into it.
func (q *Query) Insert(ctx context.Context, row any, out any) error {
	r := request{method: http.MethodPost, path: q.path(), body: row}
	if out != nil {
		r.prefer = []string{"return=representation"}
		r.accept = singleObject
		r.out = out
	}
	if _, err := q.c.doRequest(ctx, r); err != nil {
		return fmt.Errorf("client.Insert %s: %w", q.table, err)
	}
	return nil
}

// Update patches every matching row. When out is non-nil the updated rows
// are decoded into it (a slice pointer).
func (q *Query) Update(ctx context.Context, patch any, out any) error {
	r := request{method: http.MethodPatch, path: q.path(), body: patch}
	if out != nil {
		r.prefer = []string{"return=representation"}
		r.out = out
	}
	if _, err := q.c.doRequest(ctx, r); err != nil {
		return fmt.Errorf("client.Update %s: %w", q.table, err)
	}
	return nil
}

// Delete removes every matching row. Callers must add at least one filter.
// When out is non-nil the deleted rows are decoded into it (a slice pointer).
func (q *Query) Delete(ctx context.Context, out any) error {
	if len(q.params) == 0 {
		return fmt.Errorf("client.Delete %s: refusing unfiltered delete", q.table)
	}
	r := request{method: http.MethodDelete, path: q.path()}
	if out != nil {
		r.prefer = []string{"return=representation"}
		r.out = out
	}
	if _, err := q.c.doRequest(ctx, r); err != nil {
		return fmt.Errorf("client.Delete %s: %w", q.table, err)
	}
	return nil
}

const singleObject = "application/vnd.pgrst.object+json"

type request struct {
	method string
	path   string
	body   any
	out    any
	accept string
	prefer []string
}

func (c *Client) doRequest(ctx context.Context, r request) (http.Header, error) {
	var reqBody io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}
	if len(r.prefer) > 0 {
		req.Header.Set("Prefer", strings.Join(r.prefer, ","))
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.apiKey != "":
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return resp.Header, decodeError(resp)
	}

	if r.out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
			return resp.Header, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.Header, nil
}

// parseContentRange extracts the total from "0-24/3573" or "*/0".
func parseContentRange(v string) (int, error) {
	i := strings.LastIndexByte(v, '/')
	if i < 0 || i == len(v)-1 {
		return 0, fmt.Errorf("malformed Content-Range %q", v)
	}
	n, err := strconv.Atoi(v[i+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q", v)
	}
	return n, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
