package cookie

import "errors"

// Errors.
var (
	ErrInvalidArgument = errors.New("cookie: name must be a non-empty string")
	ErrNilJar          = errors.New("cookie: jar is nil")
	ErrMalformedEscape = errors.New("cookie: malformed percent-escape")
	ErrInvalidUTF8     = errors.New("cookie: escape sequence decodes to invalid UTF-8")
	ErrConvert         = errors.New("cookie: converter failed")
)
