package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
)

// response is a completed 2xx exchange.
type response struct {
	status int
	body   []byte
}

// do issues exactly one request. Transport failures are returned as the
// client produced them; non-2xx answers become *HTTPError.
func (a *Adapter) do(ctx context.Context, method, path string, body any) (*response, error) {
	var (
		status int
		buf    bytes.Buffer
	)

	df, err := a.request(method, a.opts.baseURL()+path)
	if err != nil {
		return nil, err
	}
	df = df.WithContext(ctx).
		SetHeader(a.opts.headers()).
		BindBody(&buf).
		Code(&status)
	if body != nil {
		df = df.SetJSON(body)
	}

	start := time.Now()
	err = df.Do()
	attrs := []any{
		"method", method,
		"path", path,
		"status", status,
		"duration", time.Since(start),
	}
	if err != nil {
		a.log.Debug("rest request", append(attrs, "error", err)...)
		return nil, err
	}
	a.log.Debug("rest request", attrs...)

	if status < 200 || status > 299 {
		return nil, newHTTPError(method, path, status, buf.Bytes())
	}
	return &response{status: status, body: buf.Bytes()}, nil
}

// request starts a gout data flow for method. A new flow is built per
// call because gout flows carry per-request state.
func (a *Adapter) request(method, url string) (*dataflow.DataFlow, error) {
	g := gout.New(a.client)
	switch method {
	case http.MethodGet:
		return g.GET(url), nil
	case http.MethodPost:
		return g.POST(url), nil
	case http.MethodPut:
		return g.PUT(url), nil
	case http.MethodDelete:
		return g.DELETE(url), nil
	case http.MethodHead:
		return g.HEAD(url), nil
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
}
