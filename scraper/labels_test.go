package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLabelsOnElementItself(t *testing.T) {
	doc := docFromHTML(t, `
		<div data-series="camry" data-aa-series-grade="LE" data-modal-content-json='{}' id="el"></div>`)

	base, trim := boundedLabelSearch(doc.Find("#el"))
	require.Equal(t, "camry", base)
	require.Equal(t, "LE", trim)
}

func TestLabelsOnAncestor(t *testing.T) {
	doc := docFromHTML(t, `
		<section data-series="rav4" data-aa-series-grade="XLE">
			<div><div><div id="el" data-modal-content-json='{}'></div></div></div>
		</section>`)

	base, trim := boundedLabelSearch(doc.Find("#el"))
	require.Equal(t, "rav4", base)
	require.Equal(t, "XLE", trim)
}

func TestLabelsOnAncestorDescendant(t *testing.T) {
	// The grade lives on a cousin node, reachable only by searching an
	// ancestor's subtree.
	doc := docFromHTML(t, `
		<section data-series="prius">
			<div><span data-aa-series-grade="Limited"></span></div>
			<div><div id="el" data-modal-content-json='{}'></div></div>
		</section>`)

	base, trim := boundedLabelSearch(doc.Find("#el"))
	require.Equal(t, "prius", base)
	require.Equal(t, "Limited", trim)
}

func TestLabelsOnParentSibling(t *testing.T) {
	doc := docFromHTML(t, `
		<section>
			<header data-series="tacoma" data-aa-series-grade="TRD"></header>
			<div><div id="el" data-modal-content-json='{}'></div></div>
		</section>`)

	base, trim := boundedLabelSearch(doc.Find("#el"))
	require.Equal(t, "tacoma", base)
	require.Equal(t, "TRD", trim)
}

func TestLabelsMissingEverywhere(t *testing.T) {
	doc := docFromHTML(t, `
		<div><div><div id="el" data-modal-content-json='{}'></div></div></div>`)

	base, trim := boundedLabelSearch(doc.Find("#el"))
	require.Equal(t, "", base)
	require.Equal(t, "", trim)
}
