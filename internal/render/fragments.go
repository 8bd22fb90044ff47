package render

import (
	"fmt"
	"html/template"
)

const fragmentsSrc = `
{{- define "news" -}}
{{- if .Symbol -}}
<h2>{{.Symbol}} Crypto News</h2>
<form action="/news" method="get">
    <button type="submit" class="btn btn-secondary mb-4">Back to General News</button>
</form>
{{- else -}}
<h2 class="mb-4">Latest Crypto News</h2>
{{- end}}
<div class="row">
{{- range .Items}}
<div class="col-12 mb-4">
    <div class="card shadow-sm">
        <div class="card-body">
            <h5 class="card-title mb-2">
                <a href="{{.Link}}" target="_blank" rel="noopener noreferrer" class="text-decoration-none">{{.Title}}</a>
            </h5>
            <p class="card-text">
                <small class="text-muted">{{with .PublishedAt}}{{.}} | {{end}}Source: {{.SourceLabel}}</small>
            </p>
        </div>
    </div>
</div>
{{- else}}
<p class="text-muted">No news articles found.</p>
{{- end}}
</div>
{{- end}}

{{- define "info-empty" -}}
<div id="info-container" class="mt-4"></div>
{{- end}}

{{- define "info-missing" -}}
<p class="text-danger">No info found for this symbol.</p>
{{- end}}

{{- define "info" -}}
<h2>{{.Name}} ({{.Symbol}}) Info</h2>
<div class="coin-description">{{.Description}}</div>
{{- if .Websites}}
<p>Website: {{range $i, $u := .Websites}}{{if $i}}, {{end}}<a href="{{$u}}" target="_blank" rel="noopener noreferrer">{{$u}}</a>{{end}}</p>
{{- end}}
{{- end}}

{{- define "price-card" -}}
<div class="col-md-4 mb-4">
    <div class="card text-center shadow-sm">
        <div class="card-body">
            <h5 class="card-title">{{if .Ranked}}{{.Rank}}. {{end}}{{.Name}} ({{.Symbol}})</h5>
            <p class="card-text display-6">${{usd .PriceUSD}}</p>
        </div>
    </div>
</div>
{{- end}}

{{- define "prices" -}}
{{- if .Listing -}}
{{- range .Quotes}}
{{template "price-card" .}}
{{- else -}}
<p class="text-danger">No top cryptocurrency data available.</p>
{{- end}}
{{- else -}}
{{- range .Quotes}}{{template "price-card" .}}{{else}}<p class="text-danger">No price data found for the given symbol.</p>{{end}}
{{- end}}
{{- end}}
`

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"usd": FormatUSD,
}).Parse(fragmentsSrc))

// FormatUSD renders a price with exactly two decimals and no grouping.
func FormatUSD(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
