package cookie_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiejar/pkg/cookie"
)

func TestBuildEntry(t *testing.T) {
	t.Parallel()

	at := time.Date(2030, time.March, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))

	testCases := []struct {
		name  string
		value any
		opts  []cookie.Option
		want  string
	}{
		{
			name:  "no attributes",
			value: "1",
			want:  "x=1",
		},
		{
			name:  "all attributes in fixed order",
			value: "1",
			opts: []cookie.Option{
				cookie.WithSecure(true),
				cookie.WithPath("/"),
				cookie.WithDomain("d"),
				cookie.WithExpiresAt(at),
			},
			want: "x=1; expires=Mon, 04 Mar 2030 04:06:07 GMT; domain=d; path=/; secure",
		},
		{
			name:  "absent attributes are omitted",
			value: "1",
			opts:  []cookie.Option{cookie.WithPath("/app"), cookie.WithSecure(false), cookie.WithDomain("")},
			want:  "x=1; path=/app",
		},
		{
			name:  "value is percent-encoded",
			value: "a b;c",
			want:  "x=a%20b%3Bc",
		},
		{
			name:  "raw value is written verbatim",
			value: "a b;c",
			opts:  []cookie.Option{cookie.WithRaw(true)},
			want:  "x=a b;c",
		},
		{
			name:  "non-string values are stringified",
			value: 42,
			want:  "x=42",
		},
		{
			name:  "nil value is empty",
			value: nil,
			want:  "x=",
		},
		{
			name:  "zero absolute time adds no expires clause",
			value: "1",
			opts:  []cookie.Option{cookie.WithExpiresAt(time.Time{})},
			want:  "x=1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := cookie.BuildEntry("x", tc.value, tc.opts...)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBuildEntry_InvalidName(t *testing.T) {
	t.Parallel()

	_, err := cookie.BuildEntry("", "v")
	require.ErrorIs(t, err, cookie.ErrInvalidArgument)
}

func TestBuildEntry_RelativeExpiry(t *testing.T) {
	t.Parallel()

	before := time.Now()
	entry, err := cookie.BuildEntry("x", "1", cookie.WithExpiresIn(5))
	require.NoError(t, err)

	const prefix = "x=1; expires="
	require.Contains(t, entry, prefix)

	at, err := http.ParseTime(entry[len(prefix):])
	require.NoError(t, err)

	// Calendar days may be 23 or 25 hours long around DST changes.
	want := before.AddDate(0, 0, 5)
	require.WithinDuration(t, want, at, 2*time.Hour)
}

func TestExpiry_Resolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 30, 12, 0, 0, 0, time.UTC)

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		_, ok := cookie.Expiry{}.Resolve(now)
		require.False(t, ok)
	})

	t.Run("relative days", func(t *testing.T) {
		t.Parallel()

		at, ok := cookie.ExpiresIn(5).Resolve(now)
		require.True(t, ok)
		require.Equal(t, time.Date(2024, time.February, 4, 12, 0, 0, 0, time.UTC), at)
	})

	t.Run("zero days is now", func(t *testing.T) {
		t.Parallel()

		at, ok := cookie.ExpiresIn(0).Resolve(now)
		require.True(t, ok)
		require.Equal(t, now, at)
	})

	t.Run("negative days", func(t *testing.T) {
		t.Parallel()

		at, ok := cookie.ExpiresIn(-1).Resolve(now)
		require.True(t, ok)
		require.True(t, at.Before(now))
	})

	t.Run("absolute", func(t *testing.T) {
		t.Parallel()

		want := now.Add(time.Hour)
		at, ok := cookie.ExpiresAt(want).Resolve(now)
		require.True(t, ok)
		require.Equal(t, want, at)
	})
}
