package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tucing-suites-calendar/internal/platform/errs"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

var ErrNilClient = errors.New("httpclient: nil client")

// Options configura un Client atado a una base URL.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// Headers se mandan en cada request (p.ej. apikey).
	Headers map[string]string

	// Transport opcional (tests).
	Transport http.RoundTripper

	MaxBodyBytes int64
}

// Client es un cliente JSON para APIs REST con base URL fija.
type Client struct {
	http    *http.Client
	base    *url.URL
	headers http.Header
	maxBody int64
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errs.New("httpclient: base url required")
	}
	base, err := url.ParseRequestURI(raw)
	if err != nil || base.Host == "" {
		return nil, errs.Wrapf(errs.New("invalid base url"), "httpclient: %q", raw)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	headers := http.Header{}
	for k, v := range opts.Headers {
		if strings.TrimSpace(k) != "" {
			headers.Set(k, v)
		}
	}

	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: opts.Transport},
		base:    base,
		headers: headers,
		maxBody: maxBody,
	}, nil
}

// Request describe una llamada. In y Out son opcionales (nil => sin body / se ignora).
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header map[string]string
	In     any
	Out    any
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status=%d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status=%d body=%s", e.Method, e.Path, e.StatusCode, e.Body)
}

// StatusCode devuelve el status de un *HTTPError en la cadena, o 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Do manda el request y decodifica la respuesta en req.Out. Cualquier status
// fuera de 2xx vuelve como *HTTPError con el body recortado.
func (c *Client) Do(ctx context.Context, req Request) error {
	if c == nil || c.http == nil {
		return ErrNilClient
	}

	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.In != nil {
		b, err := json.Marshal(req.In)
		if err != nil {
			return errs.Wrap(err, "httpclient: marshal json")
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return errs.Wrap(err, "httpclient: new request")
	}

	hreq.Header.Set("Accept", "application/json")
	if req.In != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.headers {
		hreq.Header[k] = vs
	}
	for k, v := range req.Header {
		hreq.Header.Set(k, v)
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		return errs.Wrapf(err, "httpclient: %s %s", req.Method, u.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return errs.Wrap(err, "httpclient: read body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Method:     req.Method,
			Path:       u.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if req.Out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, req.Out); err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrDecode), "httpclient: unmarshal json")
	}
	return nil
}
