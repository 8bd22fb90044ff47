package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptodigest/internal/render"
)

func TestMerge_SingleSubstitution(t *testing.T) {
	t.Parallel()

	ph := render.NewsPage.Placeholder
	page := "<main>" + ph + "</main><footer>" + ph + "</footer>"

	got := render.Merge(page, ph, "<p>F</p>")
	require.Equal(t, "<main><p>F</p></main><footer>"+ph+"</footer>", got)
	require.Equal(t, 1, strings.Count(got, ph))
}

func TestMerge_PlaceholderGoneAfterMerge(t *testing.T) {
	t.Parallel()

	for _, p := range []render.Page{render.NewsPage, render.InfoPage, render.PricesPage} {
		page := "<body>" + p.Placeholder + "</body>"
		got := render.Merge(page, p.Placeholder, "<div>x</div>")
		require.NotContains(t, got, p.Placeholder, p.Name)
		require.Equal(t, "<body><div>x</div></body>", got)
	}
}

func TestMerge_FragmentContainingPlaceholderIsNotExpandedAgain(t *testing.T) {
	t.Parallel()

	ph := render.InfoPage.Placeholder
	got := render.Merge("a"+ph+"b", ph, "["+ph+"]")
	require.Equal(t, "a["+ph+"]b", got)
}

func TestMerge_MissingPlaceholderLeavesPageUnchanged(t *testing.T) {
	t.Parallel()

	page := "<html><body>static</body></html>"
	require.Equal(t, page, render.Merge(page, render.PricesPage.Placeholder, "<p>F</p>"))
	require.Equal(t, page, render.Merge(page, "", "<p>F</p>"))
}

func TestDocument(t *testing.T) {
	t.Parallel()

	store := render.MapStore{"prices.html": "<h1>Prices</h1><div class=\"row\">" + render.PricesPage.Placeholder + "</div>"}
	r := render.New(store)

	got := r.Document(render.PricesPage, "<p>cards</p>")
	require.Equal(t, `<h1>Prices</h1><div class="row"><p>cards</p></div>`, got)

	// Missing page degrades to an empty template.
	require.Empty(t, r.Document(render.NewsPage, "<p>news</p>"))
}

func TestDirStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.html"), []byte("<div>{info_html}</div>"), 0o644))

	store := render.DirStore{Dir: dir}
	s, err := store.Load("info.html")
	require.NoError(t, err)
	require.Equal(t, "<div>{info_html}</div>", s)

	_, err = store.Load("news.html")
	require.ErrorIs(t, err, render.ErrNoPage)

	// Names cannot escape the directory.
	_, err = store.Load("../info.html")
	require.NoError(t, err)
}

func TestShippedPagesCarryPlaceholders(t *testing.T) {
	t.Parallel()

	store := render.DirStore{Dir: filepath.Join("..", "..", "static")}
	for _, p := range []render.Page{render.NewsPage, render.InfoPage, render.PricesPage} {
		s, err := store.Load(p.File)
		require.NoError(t, err, p.File)
		require.Equal(t, 1, strings.Count(s, p.Placeholder), p.File)
	}
}
