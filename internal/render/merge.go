package render

import "strings"

// Page names a page template and the token its fragment replaces.
type Page struct {
	Name        string
	File        string
	Placeholder string
}

var (
	NewsPage   = Page{Name: "news", File: "news.html", Placeholder: "<!-- News will be populated here from the backend -->"}
	InfoPage   = Page{Name: "info", File: "info.html", Placeholder: "{info_html}"}
	PricesPage = Page{Name: "prices", File: "prices.html", Placeholder: "<!-- Prices will be populated here from the backend -->"}
)

// Merge replaces the first occurrence of placeholder in page with
// fragment. A page without the placeholder is returned unchanged.
func Merge(page, placeholder, fragment string) string {
	if placeholder == "" {
		return page
	}
	return strings.Replace(page, placeholder, fragment, 1)
}
