package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// unwantedTitleTerms flags titles that are really consent screens or
// site chrome rather than the page's subject.
var unwantedTitleTerms = []string{"cookies", "analytics", "citizensinformation.ie", "home"}

// extractTitle picks the page title from <title> or the first <h1>,
// skipping consent-screen titles unless they are long enough to carry
// real information.
func extractTitle(doc *goquery.Document) string {
	var candidates []string
	if t := normalizeText(doc.Find("title").First().Text()); t != "" {
		candidates = append(candidates, t)
	}
	if h := normalizeText(doc.Find("h1").First().Text()); h != "" {
		candidates = append(candidates, h)
	}

	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		unwanted := false
		for _, term := range unwantedTitleTerms {
			if strings.Contains(lower, term) {
				unwanted = true
				break
			}
		}
		if !unwanted || len(candidate) > 20 {
			return candidate
		}
	}

	if len(candidates) > 0 {
		return candidates[0]
	}
	return "No title"
}

func extractDescription(doc *goquery.Document) string {
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(desc)
}
