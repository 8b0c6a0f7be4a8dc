package scraper

import "github.com/PuerkitoBio/goquery"

const (
	attrSeries = "data-series"
	attrGrade  = "data-aa-series-grade"

	// How many ancestor levels the label search is allowed to climb.
	maxAncestorLevels = 5
)

// boundedLabelSearch discovers the base model and trim name for a
// structured-data element. It checks the element's own tagging attributes
// first, then walks up to maxAncestorLevels ancestors; at each level it
// checks the ancestor itself, then its descendants, then one match under
// the grandparent (covering siblings of the current ancestor). The walk
// stops as soon as both values are found or the tree runs out. Values that
// were never found come back as empty strings.
func boundedLabelSearch(sel *goquery.Selection) (baseModel, trimName string) {
	baseModel = sel.AttrOr(attrSeries, "")
	trimName = sel.AttrOr(attrGrade, "")
	if baseModel != "" && trimName != "" {
		return baseModel, trimName
	}

	parent := sel.Parent()
	for level := 0; level < maxAncestorLevels; level++ {
		if parent.Length() == 0 {
			break
		}

		if baseModel == "" {
			baseModel = parent.AttrOr(attrSeries, "")
		}
		if trimName == "" {
			trimName = parent.AttrOr(attrGrade, "")
		}

		if baseModel == "" {
			baseModel = parent.Find("[" + attrSeries + "]").First().AttrOr(attrSeries, "")
		}
		if trimName == "" {
			trimName = parent.Find("[" + attrGrade + "]").First().AttrOr(attrGrade, "")
		}

		grandparent := parent.Parent()
		if grandparent.Length() > 0 && (baseModel == "" || trimName == "") {
			if baseModel == "" {
				baseModel = grandparent.Find("[" + attrSeries + "]").First().AttrOr(attrSeries, "")
			}
			if trimName == "" {
				trimName = grandparent.Find("[" + attrGrade + "]").First().AttrOr(attrGrade, "")
			}
		}

		if baseModel != "" && trimName != "" {
			break
		}
		parent = grandparent
	}

	return baseModel, trimName
}
