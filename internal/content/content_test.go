package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmbedded(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "Vijay Mohanram Iyer", p.Site.Owner)
	require.Len(t, p.Skills, 3)
	require.Len(t, p.Education, 2)
	require.Len(t, p.Experience, 4)
	require.Len(t, p.Projects, 4)
	require.Equal(t, "+4917667345305", p.Contact.Phone.Dial)

	var slugs []string
	for _, pr := range p.Projects {
		slugs = append(slugs, pr.Slug)
	}
	require.Equal(t, []string{"car-accident", "self-driving", "camcussion", "deepfake"}, slugs)

	cc, ok := p.Project("camcussion")
	require.True(t, ok)
	require.Contains(t, string(cc.DetailHTML), "<p>")
	require.Contains(t, string(cc.DetailHTML), "pupil dilation")

	job, ok := p.Job("tecolab")
	require.True(t, ok)
	require.Contains(t, string(job.DetailHTML), "<li>")

	require.Contains(t, string(p.EducationHTML), `<h2 id="karlsruhe-institute-of-technology">`)
}

func TestLoadOverrideFile(t *testing.T) {
	path := writeContent(t, `
site:
  owner: Ada Lovelace
projects:
  - slug: engine
    name: Analytical Engine
    detail: "**Notes** on the engine."
`)

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", p.Site.Owner)
	require.Empty(t, p.Experience)

	pr, ok := p.Project("engine")
	require.True(t, ok)
	require.Equal(t, "<p><strong>Notes</strong> on the engine.</p>\n", string(pr.DetailHTML))
}

func TestLoadDropsRawHTML(t *testing.T) {
	path := writeContent(t, `
site:
  owner: Test
projects:
  - slug: x
    detail: "<script>alert(1)</script>"
`)

	p, err := Load(path)
	require.NoError(t, err)
	pr, _ := p.Project("x")
	require.NotContains(t, string(pr.DetailHTML), "<script>")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "reading content"))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing owner",
			body: "site:\n  title: x\n",
			want: "site.owner is required",
		},
		{
			name: "empty slug",
			body: "site:\n  owner: a\nexperience:\n  - company: x\n",
			want: "experience[0].slug is required",
		},
		{
			name: "bad slug",
			body: "site:\n  owner: a\nprojects:\n  - slug: Not A Slug\n",
			want: `projects[0].slug "Not A Slug"`,
		},
		{
			name: "duplicate slug",
			body: "site:\n  owner: a\nprojects:\n  - slug: a\n  - slug: a\n",
			want: `duplicate projects slug "a"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeContent(t, tc.body))
			require.ErrorIs(t, err, ErrInvalid)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestSameSlugAcrossCollectionsIsAllowed(t *testing.T) {
	p := &Portfolio{
		Site:       Site{Owner: "a"},
		Experience: []Job{{Slug: "shared"}},
		Projects:   []Project{{Slug: "shared"}},
	}
	require.NoError(t, p.Validate())
}
