package cookie

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BuildEntry serializes a name, value and attributes into the entry
// string a jar expects:
//
//	name=value[; expires=<http-date>][; domain=d][; path=p][; secure]
//
// Clauses appear only when set, always in that order. Relative expiries
// are resolved against time.Now. BuildEntry does not touch any jar.
func BuildEntry(name string, value any, opts ...Option) (string, error) {
	return buildEntry(name, value, buildOptions(opts), time.Now())
}

func buildEntry(name string, value any, o Options, now time.Time) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	v := stringify(value)
	if !o.Raw {
		v = Encode(v)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(v)

	if at, ok := o.Expires.Resolve(now); ok {
		b.WriteString("; expires=")
		b.WriteString(at.UTC().Format(http.TimeFormat))
	}
	if o.Domain != "" {
		b.WriteString("; domain=")
		b.WriteString(o.Domain)
	}
	if o.Path != "" {
		b.WriteString("; path=")
		b.WriteString(o.Path)
	}
	if o.Secure {
		b.WriteString("; secure")
	}

	return b.String(), nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func validateName(name string) error {
	if name == "" {
		return ErrInvalidArgument
	}
	return nil
}
