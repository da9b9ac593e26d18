// Package cookie reads and writes name/value entries of a cookie jar.
//
// A jar is any host store that exposes the accumulated entries as one raw
// string ("a=1; b=2; flag") and accepts one serialized entry per write.
// The package never caches parsed state: every read goes back to the jar.
//
// # Basic Usage
//
//	c := cookie.New(j) // j implements cookie.Jar
//
//	// Write a value that expires in 7 days
//	entry, err := c.Set(ctx, "theme", "dark mode",
//		cookie.WithExpiresIn(7),
//		cookie.WithPath("/"),
//	)
//	// entry == "theme=dark%20mode; expires=...; path=/"
//
//	value, ok, err := c.Get(ctx, "theme")
//	// value == "dark mode", ok == true
//
//	// Expire it again
//	_, err = c.Remove(ctx, "theme", cookie.WithPath("/"))
//
// # Converters
//
// GetAs passes the looked-up value through a converter. The converter also
// runs when the name is absent, with ok set to false:
//
//	n, err := cookie.GetAs(ctx, c, "visits", func(v string, ok bool) (int, error) {
//		if !ok {
//			return 0, nil
//		}
//		return strconv.Atoi(v)
//	})
//
// # Raw Values
//
// Values are percent-encoded on write and decoded on read. Pass
// [WithRaw] to store and read them verbatim. Names are always decoded.
//
// # Parsing And Serialization
//
// [Parse] and [BuildEntry] are the pure halves of the client and can be
// used without a jar. Parse silently skips entries with malformed escapes
// so that entries written by other, less strict writers do not break reads.
//
// # Errors
//
//   - [ErrInvalidArgument]: empty name, returned before the jar is touched
//   - [ErrNilJar]: the client was created without a jar
//   - [ErrConvert]: a GetAs converter failed
//   - [ErrMalformedEscape], [ErrInvalidUTF8]: returned by [Decode]
package cookie
