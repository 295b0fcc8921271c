package gosparql

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rdfsql/gosparql/internal/query"
	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
)

const (
	headerAuthorizationKey = "Authorization"
	headerContentTypeKey   = "Content-Type"
	headerAcceptKey        = "Accept"
	headerUserAgentKey     = "User-Agent"
	headerRequestIDKey     = "X-Request-Id"

	headerContentTypeFormURLEncoded = "application/x-www-form-urlencoded"

	// sniffLength is the number of body bytes inspected when the endpoint
	// does not name a result format.
	sniffLength = 3072
	// errorBodyExcerptLength limits the response body quoted in errors.
	errorBodyExcerptLength = 512
)

// queryRequest is one execution of a query text.
type queryRequest struct {
	text      string
	form      query.Form
	requestID uuid.UUID
	timeout   time.Duration
}

// executor runs queries against an endpoint and opens the response as a
// row source.
type executor interface {
	accept(form query.Form) string
	execute(ctx context.Context, req *queryRequest) (results.Source, error)
	close()
}

type sparqlRestful struct {
	cfg       *Config
	client    *http.Client
	userAgent string
}

func newSPARQLRestful(cfg *Config) *sparqlRestful {
	transport := newTransportFactory(cfg).createTransport()
	userAgent := userAgentProduct + "/" + SPARQLGoDriverVersion + " (" + runtime.GOOS + "-" + runtime.GOARCH + ") " + runtime.Version()
	if cfg.Application != "" {
		userAgent += " " + cfg.Application
	}
	return &sparqlRestful{
		cfg:       cfg,
		client:    &http.Client{Transport: transport},
		userAgent: userAgent,
	}
}

// close releases the idle connections of the transport.
func (sr *sparqlRestful) close() {
	sr.client.CloseIdleConnections()
}

// accept returns the Accept header for a query form.
func (sr *sparqlRestful) accept(form query.Form) string {
	if form.IsGraph() {
		return results.MediaTypeNTriples
	}
	if sr.cfg.ResultFormat == results.FormatXML {
		return results.MediaTypeXML + ", " + results.MediaTypeJSON + ";q=0.9"
	}
	return results.MediaTypeJSON + ", " + results.MediaTypeXML + ";q=0.9"
}

func (sr *sparqlRestful) requestBody(text string) string {
	params := url.Values{}
	for k, vs := range sr.cfg.Params {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("query", text)
	for _, g := range sr.cfg.DefaultGraphURIs {
		params.Add("default-graph-uri", g)
	}
	for _, g := range sr.cfg.NamedGraphURIs {
		params.Add("named-graph-uri", g)
	}
	return params.Encode()
}

// execute posts the query. The timeout covers the request until the response
// headers arrive; the body is then read under ctx alone.
func (sr *sparqlRestful) execute(ctx context.Context, req *queryRequest) (results.Source, error) {
	ctx, cancel := context.WithCancel(ctx)
	var timer *time.Timer
	if req.timeout > 0 {
		timer = time.AfterFunc(req.timeout, cancel)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, sr.cfg.Endpoint, strings.NewReader(sr.requestBody(req.text)))
	if err != nil {
		cancel()
		return nil, sparqlerr.Execution(err, "failed to create a request for %v", sr.cfg.Endpoint)
	}
	httpReq.Header.Set(headerContentTypeKey, headerContentTypeFormURLEncoded)
	httpReq.Header.Set(headerAcceptKey, sr.accept(req.form))
	httpReq.Header.Set(headerUserAgentKey, sr.userAgent)
	httpReq.Header.Set(headerRequestIDKey, req.requestID.String())
	switch {
	case sr.cfg.Token != "":
		httpReq.Header.Set(headerAuthorizationKey, "Bearer "+sr.cfg.Token)
	case sr.cfg.User != "":
		httpReq.SetBasicAuth(sr.cfg.User, sr.cfg.Password)
	}

	logger.WithContext(ctx).Debugf("posting %v query to %v", req.form, sr.cfg.Endpoint)
	start := time.Now()
	resp, err := sr.client.Do(httpReq)
	if timer != nil && !timer.Stop() {
		if err == nil {
			resp.Body.Close()
		}
		cancel()
		return nil, sparqlerr.Execution(context.DeadlineExceeded, "query timed out after %v", req.timeout)
	}
	if err != nil {
		cancel()
		return nil, sparqlerr.Execution(err, "failed to reach %v", sr.cfg.Endpoint)
	}
	logger.WithContext(ctx).Debugf("response status %v after %v", resp.StatusCode, time.Since(start))

	body := &cancelingBody{ReadCloser: resp.Body, cancel: cancel}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer body.Close()
		excerpt, _ := io.ReadAll(io.LimitReader(body, errorBodyExcerptLength))
		logger.WithContext(ctx).Errorf("endpoint returned HTTP %v", resp.StatusCode)
		return nil, &sparqlerr.Error{
			Number:      sparqlerr.ErrCodeHTTPStatus,
			SQLState:    sparqlerr.SQLStateConnectionFailure,
			Kind:        sparqlerr.KindExecutionFailed,
			Message:     "endpoint returned HTTP %d: %s",
			MessageArgs: []interface{}{resp.StatusCode, strings.TrimSpace(string(excerpt))},
		}
	}

	reader := bufio.NewReaderSize(body, sniffLength)
	format := results.FormatOf(resp.Header.Get(headerContentTypeKey))
	if format == results.FormatUnknown {
		format = sniffFormat(reader, req.form)
		logger.WithContext(ctx).Debugf("content type %q, detected %v", resp.Header.Get(headerContentTypeKey), format)
	}
	return results.Decode(format, readCloser{Reader: reader, Closer: body})
}

// sniffFormat guesses the result format from the start of the body.
func sniffFormat(r *bufio.Reader, form query.Form) results.Format {
	head, _ := r.Peek(sniffLength)
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		switch {
		case m.Is("application/json"):
			return results.FormatJSON
		case m.Is("text/xml"), m.Is("application/xml"):
			return results.FormatXML
		}
	}
	if form.IsGraph() {
		return results.FormatNTriples
	}
	return results.FormatUnknown
}

// cancelingBody releases the request context once the body is closed.
type cancelingBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelingBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

type readCloser struct {
	io.Reader
	io.Closer
}
