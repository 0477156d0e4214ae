package router

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// panel is a comparable component so lookups can be checked with Equal.
type panel string

func (p panel) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(p))
	return err
}

func TestNormalizeBase(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"/":            "",
		"  ":           "",
		"portfolio":    "/portfolio",
		"/portfolio/":  "/portfolio",
		"portfolio/":   "/portfolio",
		"/a/b/":        "/a/b",
		" /portfolio ": "/portfolio",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeBase(in), "input %q", in)
	}
}

func TestJoin(t *testing.T) {
	require.Equal(t, "/", Join("", "/"))
	require.Equal(t, "/education", Join("", "education"))
	require.Equal(t, "/portfolio", Join("/portfolio", "/"))
	require.Equal(t, "/portfolio/projects/deepfake", Join("/portfolio", "/projects/deepfake"))
}

func TestLookupExactMatch(t *testing.T) {
	home := panel("home")
	edu := panel("education")
	table := New("",
		Entry{Path: "/", Panel: home},
		Entry{Path: "/education", Panel: edu},
	)

	p, ok := table.Lookup("/education")
	require.True(t, ok)
	require.Equal(t, edu, p)

	_, ok = table.Lookup("/education/")
	require.False(t, ok)
	_, ok = table.Lookup("/educ")
	require.False(t, ok)
	_, ok = table.Lookup("/unknown")
	require.False(t, ok)
}

func TestFirstEntryWins(t *testing.T) {
	first := panel("first")
	second := panel("second")
	table := New("",
		Entry{Path: "/projects/camcussion", Panel: first},
		Entry{Path: "/projects/camcussion", Panel: second},
	)

	p, ok := table.Lookup("/projects/camcussion")
	require.True(t, ok)
	require.Equal(t, first, p)
	require.Equal(t, 1, table.Len())
}

func TestBasePathPrefixesRoutes(t *testing.T) {
	home := panel("home")
	edu := panel("education")
	table := New("portfolio/",
		Entry{Path: "/", Panel: home},
		Entry{Path: "/education", Panel: edu},
	)

	require.Equal(t, "/portfolio", table.Base())
	require.Equal(t, []string{"/portfolio", "/portfolio/education"}, table.Paths())

	p, ok := table.Lookup("/portfolio")
	require.True(t, ok)
	require.Equal(t, home, p)

	p, ok = table.Lookup("/portfolio/")
	require.True(t, ok)
	require.Equal(t, home, p)

	_, ok = table.Lookup("/education")
	require.False(t, ok)
	_, ok = table.Lookup("/")
	require.False(t, ok)
}

func TestEntriesIsACopy(t *testing.T) {
	table := New("", Entry{Path: "/", Panel: panel("home")})

	entries := table.Entries()
	entries[0].Path = "/changed"

	require.Equal(t, []string{"/"}, table.Paths())
}
