package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/getmockd/restapi/pkg/logging"
	"github.com/getmockd/restapi/pkg/resource"
	"github.com/getmockd/restapi/pkg/schema"
)

// Adapter persists models through a REST resource API.
type Adapter struct {
	mu     sync.RWMutex
	models map[string]*schema.ModelDescriptor

	opts   Options
	client *http.Client
	log    *slog.Logger
}

var _ schema.Adapter = (*Adapter)(nil)

// New creates an adapter talking to the API described by opts.
func New(opts Options, options ...Option) *Adapter {
	a := &Adapter{
		models: make(map[string]*schema.ModelDescriptor),
		opts:   opts,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.client == nil {
		a.client = opts.httpClient()
	}
	a.log = logging.OrNop(a.log)
	return a
}

// Initialize builds an adapter from s.Settings and binds it to s.
func Initialize(s *schema.Schema) error {
	return NewInitializer()(s)
}

// NewInitializer returns a schema.Initializer that applies options to the
// adapter it creates.
func NewInitializer(options ...Option) schema.Initializer {
	return func(s *schema.Schema) error {
		opts, err := ParseOptions(s.Settings)
		if err != nil {
			return err
		}
		s.Adapter = New(opts, options...)
		return nil
	}
}

// Options returns the options the adapter was built with.
func (a *Adapter) Options() Options {
	return a.opts
}

// Define registers or replaces a model descriptor.
func (a *Adapter) Define(d *schema.ModelDescriptor) {
	if d.Settings == nil {
		d.Settings = make(map[string]any)
	}
	if d.Properties == nil {
		d.Properties = make(map[string]schema.Property)
	}
	a.mu.Lock()
	a.models[d.Model] = d
	a.mu.Unlock()
}

// Descriptor returns the registered descriptor for model.
func (a *Adapter) Descriptor(model string) (*schema.ModelDescriptor, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	d, ok := a.models[model]
	return d, ok
}

// DefineProperty sets a property on an already defined model.
func (a *Adapter) DefineProperty(model, prop string, p schema.Property) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.models[model]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	d.Properties[prop] = p
	return nil
}

// Create POSTs rec to the collection and returns the id the server
// assigned. When the response carries no id, the whole response record is
// returned instead, or nil when the body is empty.
func (a *Adapter) Create(ctx context.Context, model string, rec schema.Record) (any, error) {
	resp, err := a.do(ctx, http.MethodPost, resource.URL(model, nil), rec)
	if err != nil {
		return nil, err
	}
	if isEmpty(resp.body) {
		return nil, nil
	}

	if id := gjson.GetBytes(resp.body, "id"); id.Exists() {
		if v := idValue(id); resource.IsID(v) {
			return v, nil
		}
	}

	var out schema.Record
	if err := decode(resp.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save PUTs the full record to its resource path and returns the server's
// representation of it.
func (a *Adapter) Save(ctx context.Context, model string, rec schema.Record) (schema.Record, error) {
	id := rec["id"]
	if !resource.IsID(id) {
		return nil, ErrMissingID
	}
	resp, err := a.do(ctx, http.MethodPut, resource.URL(model, id), rec)
	if err != nil {
		return nil, err
	}
	var out schema.Record
	if err := decode(resp.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAttributes stores id into rec and saves it. rec is modified.
func (a *Adapter) UpdateAttributes(ctx context.Context, model string, id any, rec schema.Record) (schema.Record, error) {
	if rec == nil {
		rec = make(schema.Record)
	}
	rec["id"] = id
	return a.Save(ctx, model, rec)
}

// Destroy deletes one record.
func (a *Adapter) Destroy(ctx context.Context, model string, id any) error {
	if !resource.IsID(id) {
		return ErrMissingID
	}
	_, err := a.do(ctx, http.MethodDelete, resource.URL(model, id), nil)
	return err
}

// Exists reports whether the record is present. A 404 is a normal false
// answer; any other failure is returned.
func (a *Adapter) Exists(ctx context.Context, model string, id any) (bool, error) {
	if !resource.IsID(id) {
		return false, ErrMissingID
	}
	_, err := a.do(ctx, http.MethodHead, resource.URL(model, id), nil)
	switch {
	case err == nil:
		return true, nil
	case IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// Find fetches one record. It returns a nil record and nil error when the
// server reports 404 or answers with an empty body, null, {} or [].
func (a *Adapter) Find(ctx context.Context, model string, id any) (schema.Record, error) {
	if !resource.IsID(id) {
		return nil, ErrMissingID
	}
	resp, err := a.do(ctx, http.MethodGet, resource.URL(model, id), nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if isEmpty(resp.body) {
		return nil, nil
	}
	var out schema.Record
	if err := decode(resp.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All lists the collection, passing q (typically a *query.Query or a map
// with "where" and "order") in the query parameter. The decoded body is
// returned as is.
func (a *Adapter) All(ctx context.Context, model string, q any) ([]schema.Record, error) {
	resp, err := a.do(ctx, http.MethodGet, resource.URL(model, q), nil)
	if err != nil {
		return nil, err
	}
	var out []schema.Record
	if err := decode(resp.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DestroyAll is not supported by the REST protocol.
func (a *Adapter) DestroyAll(context.Context, string) error {
	return fmt.Errorf("destroyAll: %w", ErrNotSupported)
}

// Count is not supported by the REST protocol.
func (a *Adapter) Count(context.Context, string, any) (int, error) {
	return 0, fmt.Errorf("count: %w", ErrNotSupported)
}

// decode unmarshals a JSON body. An empty body leaves v untouched.
func decode(body []byte, v any) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isEmpty reports whether body is blank, null, or an object or array
// without elements.
func isEmpty(body []byte) bool {
	r := gjson.ParseBytes(body)
	if r.Type == gjson.Null {
		return true
	}
	if !r.IsObject() && !r.IsArray() {
		return false
	}
	empty := true
	r.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return empty
}

// idValue converts a JSON id to a Go value, keeping integral numbers as
// int64.
func idValue(r gjson.Result) any {
	if r.Type == gjson.Number {
		if f := r.Float(); f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return r.Int()
		}
		return r.Float()
	}
	return r.Value()
}
