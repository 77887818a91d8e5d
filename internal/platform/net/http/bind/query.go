package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "doomscroll/internal/platform/errors"
)

// ParseQuery fills T's `query`-tagged fields from the URL and validates it.
// A `default` tag applies when the parameter is absent or blank.
// Supported field kinds are string, bool and the signed ints.
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Newf(perr.ErrorCodeUnknown, "query target %T is not a struct", dst)
	}
	q := r.URL.Query()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("query"), ",")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			raw = sf.Tag.Get("default")
		}
		if raw == "" {
			continue
		}
		if err := setField(rv.Field(i), raw); err != nil {
			return dst, perr.WithField(perr.InvalidArgf("%s: %v", name, err), name)
		}
	}
	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func setField(f reflect.Value, raw string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return errNotInt
		}
		f.SetInt(n)
	default:
		return perr.Newf(perr.ErrorCodeUnknown, "unsupported kind %s", f.Kind())
	}
	return nil
}

var errNotInt = perr.InvalidArgf("must be an integer")
