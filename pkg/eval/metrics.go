package eval

import (
	"regexp"
	"strings"

	"github.com/mhealy/graphrag-prep/pkg/textstats"
)

var (
	numberPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	termPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
)

// schemeKeywords are domain phrases counted toward factual accuracy
// even when the capitalized-term pattern misses them (acronyms,
// lowercase idioms).
var schemeKeywords = []string{
	"First Home Scheme", "Help to Buy", "Local Authority", "HAP", "RAS",
	"Cost Rental", "Vacant Property", "Affordable Purchase", "Enhanced",
	"Dublin", "Cork", "Galway", "fresh start",
}

// FactualAccuracy measures how much of the ground truth's factual
// content survives in the response: the numbers it states, the scheme
// keywords it names, and its capitalized terms. Each component is the
// fraction of the truth's items found in the response, and numbers
// carry the most weight.
func FactualAccuracy(response, groundTruth string) float64 {
	responseNumbers := matchSet(numberPattern, strings.ReplaceAll(response, ",", ""))
	truthNumbers := matchSet(numberPattern, strings.ReplaceAll(groundTruth, ",", ""))

	responseTerms := matchSet(termPattern, response)
	truthTerms := matchSet(termPattern, groundTruth)

	responseSchemes := keywordSet(response)
	truthSchemes := keywordSet(groundTruth)

	numberAccuracy := recall(responseNumbers, truthNumbers)
	termAccuracy := recall(responseTerms, truthTerms)
	schemeAccuracy := recall(responseSchemes, truthSchemes)

	return 0.5*numberAccuracy + 0.3*schemeAccuracy + 0.2*termAccuracy
}

// Relevance scores lexical similarity between response and ground
// truth as the cosine of their stopword-filtered word frequency
// vectors.
func Relevance(response, groundTruth string) float64 {
	return textstats.Cosine(
		textstats.Frequencies(response),
		textstats.Frequencies(groundTruth),
	)
}

func matchSet(re *regexp.Regexp, text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, m := range re.FindAllString(text, -1) {
		set[m] = struct{}{}
	}
	return set
}

func keywordSet(text string) map[string]struct{} {
	lower := strings.ToLower(text)
	set := make(map[string]struct{})
	for _, kw := range schemeKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			set[kw] = struct{}{}
		}
	}
	return set
}

// recall is the fraction of want's members present in got. An empty
// want scores zero.
func recall(got, want map[string]struct{}) float64 {
	if len(want) == 0 {
		return 0
	}
	matched := 0
	for item := range want {
		if _, ok := got[item]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want))
}
