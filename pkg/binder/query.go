package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Query creates a URL query binder. Struct fields tagged `query:"name"` are
// populated from the request's query string. Supported field kinds are
// string, bool and the integer types; absent parameters leave the field
// untouched so zero values can act as "not set".
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a non-nil struct pointer", ErrFailedToParseQuery)
		}

		values := r.URL.Query()
		elem := rv.Elem()
		typ := elem.Type()

		for i := range typ.NumField() {
			tag := typ.Field(i).Tag.Get("query")
			if tag == "" || tag == "-" {
				continue
			}
			if !values.Has(tag) {
				continue
			}
			raw := values.Get(tag)

			field := elem.Field(i)
			switch field.Kind() {
			case reflect.String:
				field.SetString(raw)
			case reflect.Bool:
				b, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("%w: parameter %q: %v", ErrFailedToParseQuery, tag, err)
				}
				field.SetBool(b)
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				n, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: parameter %q: %v", ErrFailedToParseQuery, tag, err)
				}
				field.SetInt(n)
			default:
				return fmt.Errorf("%w: unsupported field kind %s for parameter %q", ErrFailedToParseQuery, field.Kind(), tag)
			}
		}

		return nil
	}
}
