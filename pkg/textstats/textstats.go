// Package textstats provides word frequency statistics over cleaned
// document text. Frequencies are computed per document, merged across a
// corpus, and ranked to surface the dominant vocabulary of a scrape
// run. The same frequency vectors feed lexical similarity scoring.
package textstats

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// stopwords holds frequently occurring words ignored during frequency
// analysis. This list can be extended as needed.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {}, "afterwards": {},
	"again": {}, "against": {}, "all": {}, "almost": {}, "alone": {}, "along": {},
	"already": {}, "also": {}, "although": {}, "always": {}, "am": {}, "among": {},
	"amongst": {}, "amount": {}, "an": {}, "and": {}, "another": {}, "any": {},
	"anyhow": {}, "anyone": {}, "anything": {}, "anyway": {}, "anywhere": {},
	"are": {}, "aren't": {}, "around": {}, "as": {}, "at": {},

	"back": {}, "be": {}, "became": {}, "because": {}, "become": {}, "becomes": {},
	"becoming": {}, "been": {}, "before": {}, "beforehand": {}, "behind": {},
	"being": {}, "below": {}, "beside": {}, "besides": {}, "between": {},
	"beyond": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "can't": {}, "cannot": {}, "could": {}, "couldn't": {},

	"did": {}, "didn't": {}, "do": {}, "does": {}, "doesn't": {}, "doing": {},
	"don't": {}, "done": {}, "down": {}, "during": {},

	"each": {}, "either": {}, "else": {}, "elsewhere": {}, "enough": {},
	"entirely": {}, "especially": {}, "etc": {}, "even": {}, "ever": {},
	"every": {}, "everyone": {}, "everything": {}, "everywhere": {},

	"few": {}, "for": {}, "former": {}, "formerly": {}, "from": {},
	"further": {},

	"had": {}, "hadn't": {}, "has": {}, "hasn't": {}, "have": {}, "haven't": {},
	"having": {}, "he": {}, "he'd": {}, "he'll": {}, "he's": {}, "hence": {},
	"her": {}, "here": {}, "hereafter": {}, "hereby": {}, "herein": {},
	"here's": {}, "hereupon": {}, "hers": {}, "herself": {}, "him": {},
	"himself": {}, "his": {}, "how": {}, "however": {},

	"i": {}, "i'd": {}, "i'll": {}, "i'm": {}, "i've": {},
	"if": {}, "in": {}, "indeed": {}, "into": {}, "is": {}, "isn't": {},
	"it": {}, "it's": {}, "its": {}, "itself": {},

	"just": {},

	"keep": {},

	"last": {}, "latter": {}, "latterly": {}, "least": {}, "less": {},
	"let": {}, "let's": {}, "like": {}, "likely": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "maybe": {}, "me": {},
	"meanwhile": {}, "might": {}, "mine": {}, "more": {}, "moreover": {},
	"most": {}, "mostly": {}, "much": {}, "must": {}, "mustn't": {},
	"my": {}, "myself": {},

	"neither": {}, "never": {}, "nevertheless": {}, "next": {}, "no": {},
	"nobody": {}, "none": {}, "noone": {}, "nor": {}, "not": {},
	"nothing": {}, "now": {}, "nowhere": {},

	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {},

	"part": {}, "per": {}, "perhaps": {}, "please": {}, "put": {},

	"rather": {}, "re": {}, "same": {}, "see": {}, "seem": {}, "seemed": {},
	"seeming": {}, "seems": {}, "several": {}, "she": {}, "she'd": {},
	"she'll": {}, "she's": {}, "should": {}, "shouldn't": {}, "since": {},
	"so": {}, "some": {}, "somehow": {}, "someone": {}, "something": {},
	"sometime": {}, "sometimes": {}, "somewhere": {}, "still": {},
	"such": {},

	"take": {}, "than": {}, "that": {}, "that's": {}, "the": {},
	"their": {}, "theirs": {}, "them": {}, "themselves": {}, "then": {},
	"thence": {}, "there": {}, "thereafter": {}, "thereby": {},
	"therefore": {}, "therein": {}, "there's": {}, "thereupon": {},
	"these": {}, "they": {}, "they'd": {}, "they'll": {}, "they're": {},
	"they've": {}, "this": {}, "those": {}, "through": {}, "throughout": {},
	"thru": {}, "thus": {}, "to": {}, "together": {}, "too": {},
	"toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},

	"very": {}, "via": {},

	"was": {}, "wasn't": {}, "we": {}, "we'd": {}, "we'll": {},
	"we're": {}, "we've": {}, "well": {}, "were": {}, "weren't": {},
	"what": {}, "whatever": {}, "what's": {}, "when": {}, "whence": {},
	"whenever": {}, "where": {}, "whereafter": {}, "whereas": {},
	"whereby": {}, "wherein": {}, "where's": {}, "whereupon": {},
	"wherever": {}, "whether": {}, "which": {}, "while": {}, "whither": {},
	"who": {}, "who'd": {}, "whoever": {}, "who'll": {}, "who's": {},
	"whose": {}, "why": {}, "with": {}, "within": {}, "without": {},
	"won't": {}, "would": {}, "wouldn't": {},

	"yet": {}, "you": {}, "you'd": {}, "you'll": {}, "you're": {},
	"you've": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},

	// Additional contractions and variants
	"ain't": {}, "it'll": {}, "shan't": {}, "that'll": {}, "when's": {},

	// Common web/UI noise words
	"click": {}, "clickable": {}, "clicked": {}, "clicking": {},
	"button": {}, "link": {}, "menu": {},
	"redirected": {}, "redirect": {}, "redirecting": {},
	"page": {}, "pages": {}, "website": {}, "site": {},
	"home": {}, "homepage": {},
	"search": {}, "searching": {}, "searched": {},
	"loading": {}, "loaded": {}, "load": {}, "loads": {},
}

// IsStopword reports whether a word is filtered out of frequency maps.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// Frequencies returns the word frequency map for a single document,
// with punctuation stripped and stopwords removed.
func Frequencies(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text)) // strings.Fields handles multiple spaces and newlines
	frequencies := make(map[string]int)

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			// Keep only lowercase letters and numbers
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		if _, exists := stopwords[word]; exists || word == "" {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

// Merge aggregates per-document frequency maps into a single corpus map.
func Merge(maps ...map[string]int) map[string]int {
	merged := make(map[string]int)

	for _, counts := range maps {
		for word, count := range counts {
			merged[word] += count
		}
	}

	return merged
}

// Entry pairs a word with its aggregate count.
type Entry struct {
	Word  string
	Count int
}

// Top returns the n highest-count entries, ordered by descending count
// with alphabetical tie-breaking so results are deterministic.
func Top(freq map[string]int, n int) []Entry {
	entries := make([]Entry, 0, len(freq))
	for word, count := range freq {
		entries = append(entries, Entry{Word: word, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopKeywords returns the n highest-count words as "word:count"
// strings, skipping malformed tokens.
func TopKeywords(freq map[string]int, n int) []string {
	filtered := make(map[string]int, len(freq))
	for word, count := range freq {
		if isValidKeyword(word) {
			filtered[word] = count
		}
	}

	entries := Top(filtered, n)
	keywords := make([]string, len(entries))
	for i, e := range entries {
		keywords[i] = fmt.Sprintf("%s:%d", e.Word, e.Count)
	}
	return keywords
}

// isValidKeyword filters obviously broken tokens (unmatched delimiters,
// trailing separators, unmatched quotes) while keeping technical terms
// like x_train.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}

	if strings.Contains(word, "(") && !strings.Contains(word, ")") {
		return false
	}
	if strings.Contains(word, "[") && !strings.Contains(word, "]") {
		return false
	}
	if strings.Contains(word, "{") && !strings.Contains(word, "}") {
		return false
	}

	if strings.Count(word, `"`)%2 != 0 {
		return false
	}
	if strings.Count(word, "'")%2 != 0 {
		return false
	}

	return true
}

// Cosine computes the cosine similarity of two frequency vectors.
// Empty vectors score zero.
func Cosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for word, ca := range a {
		if cb, ok := b[word]; ok {
			dot += float64(ca) * float64(cb)
		}
		normA += float64(ca) * float64(ca)
	}
	for _, cb := range b {
		normB += float64(cb) * float64(cb)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
