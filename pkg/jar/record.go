package jar

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Record is one stored entry with the attributes it was written with.
// Name and Value are kept exactly as written; the jar never decodes them.
type Record struct {
	Expires time.Time // zero means a session entry
	Created time.Time
	Name    string
	Value   string
	Domain  string // lowercased, without a leading dot; empty means host-only
	Path    string
	Secure  bool
}

// Key identifies a record. Writes with the same key replace each other.
type Key struct {
	Name   string
	Domain string
	Path   string
}

// Key returns the identity of r.
func (r Record) Key() Key {
	return Key{Name: r.Name, Domain: r.Domain, Path: r.Path}
}

// Expired reports whether r has an expiry that is not after now.
func (r Record) Expired(now time.Time) bool {
	return !r.Expires.IsZero() && !r.Expires.After(now)
}

// String renders r the way it appears in a raw jar string.
func (r Record) String() string {
	if r.Name == "" {
		return r.Value
	}
	return r.Name + "=" + r.Value
}

// ParseEntry turns a serialized entry ("name=value; expires=...; path=/")
// into a Record. Attribute names are case-insensitive and unknown ones are
// ignored. max-age wins over expires; a non-positive max-age expires the
// record at now. An entry without '=' is stored with an empty name.
func ParseEntry(entry string, now time.Time) (Record, error) {
	parts := strings.Split(entry, ";")

	var rec Record
	pair := strings.TrimSpace(parts[0])
	if name, value, ok := strings.Cut(pair, "="); ok {
		rec.Name = strings.TrimSpace(name)
		rec.Value = strings.TrimSpace(value)
	} else {
		rec.Value = pair
	}
	if rec.Name == "" && rec.Value == "" {
		return Record{}, errors.Join(ErrInvalidEntry, errors.New("jar: empty name and value"))
	}

	maxAge := false
	for _, attr := range parts[1:] {
		key, val, _ := strings.Cut(attr, "=")
		val = strings.TrimSpace(val)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if maxAge {
				continue
			}
			if t, err := http.ParseTime(val); err == nil {
				rec.Expires = t
			}
		case "max-age":
			secs, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			maxAge = true
			if secs <= 0 {
				rec.Expires = now
			} else {
				rec.Expires = now.Add(time.Duration(secs) * time.Second)
			}
		case "domain":
			rec.Domain = strings.ToLower(strings.TrimPrefix(val, "."))
		case "path":
			if strings.HasPrefix(val, "/") {
				rec.Path = val
			}
		case "secure":
			rec.Secure = true
		}
	}

	return rec, nil
}

// render joins records into a raw jar string.
func render(records []Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(r.String())
	}
	return b.String()
}
