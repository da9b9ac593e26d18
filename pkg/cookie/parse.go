package cookie

import (
	"strings"
	"unicode"
)

// Entry is a single name/value pair read from a jar.
// Value is empty for flag entries.
type Entry struct {
	Name  string
	Value string
}

// Parse splits a raw jar string into a name to value map.
//
// Entries are separated by ';' followed by optional whitespace. Names are
// always percent-decoded; values only when decodeValues is true. An entry
// without '=' is a flag and maps to the empty string. An entry that fails
// to decode is skipped. When a name repeats, the last occurrence wins.
func Parse(raw string, decodeValues bool) map[string]string {
	out := make(map[string]string)
	scan(raw, decodeValues, func(e Entry) { out[e.Name] = e.Value }, nil)
	return out
}

// scan calls emit for every usable entry of raw in jar order and drop for
// every candidate discarded because of a decode error.
func scan(raw string, decodeValues bool, emit func(Entry), drop func(candidate string, err error)) {
	if raw == "" {
		return
	}

	for i, candidate := range strings.Split(raw, ";") {
		if i > 0 {
			candidate = strings.TrimLeftFunc(candidate, unicode.IsSpace)
		}

		e, err := parseEntry(candidate, decodeValues)
		if err != nil {
			if drop != nil {
				drop(candidate, err)
			}
			continue
		}
		if e.Name != "" {
			emit(e)
		}
	}
}

// parseEntry decodes one candidate. A candidate that starts with '=' has an
// empty name and yields the zero Entry.
func parseEntry(candidate string, decodeValue bool) (Entry, error) {
	rawName, rawValue, found := strings.Cut(candidate, "=")
	if !found {
		name, err := Decode(candidate)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Name: name}, nil
	}
	if rawName == "" {
		return Entry{}, nil
	}

	name, err := Decode(rawName)
	if err != nil {
		return Entry{}, err
	}

	value := rawValue
	if decodeValue {
		if value, err = Decode(rawValue); err != nil {
			return Entry{}, err
		}
	}
	return Entry{Name: name, Value: value}, nil
}
