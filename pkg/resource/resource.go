// Package resource derives REST resource paths from model names.
package resource

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"

	"github.com/gobuffalo/flect"
	"github.com/iancoleman/strcase"

	"github.com/getmockd/restapi/pkg/query"
)

// Name returns the collection segment for a model: the English plural of
// the model name in lower snake case. "Dog" becomes "dogs", "Person"
// becomes "people", "BlogPost" becomes "blog_posts".
func Name(model string) string {
	return strcase.ToSnake(flect.Pluralize(model))
}

// URL builds the request path for model.
//
// A structured idOrQuery (map, struct, slice, or non-nil pointer to one)
// is JSON-encoded into the "query" parameter. A truthy scalar is appended
// as the record id. Anything else yields the bare collection path.
func URL(model string, idOrQuery any) string {
	path := "/" + Name(model)

	switch {
	case isStructured(idOrQuery):
		b, err := json.Marshal(idOrQuery)
		if err != nil {
			return path
		}
		return path + "?" + query.Param + "=" + url.QueryEscape(string(b))
	case isTruthy(idOrQuery):
		return path + "/" + url.PathEscape(fmt.Sprint(idOrQuery))
	default:
		return path
	}
}

// IsID reports whether v addresses a single record: a non-empty string,
// a non-zero number or true.
func IsID(v any) bool {
	return isTruthy(v)
}

func isStructured(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return !rv.IsNil()
	case reflect.Struct, reflect.Array:
		return true
	}
	return false
}

func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return false
}
