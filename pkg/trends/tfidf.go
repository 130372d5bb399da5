package trends

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// vectorize builds L2-normalized TF-IDF vectors for the given documents
// over a vocabulary derived from the documents themselves, with english
// stopwords removed. The vocabulary ordering is stable (sorted terms) so
// repeated calls over the same input produce identical vectors.
func vectorize(docs []string) [][]float64 {
	// Document frequencies over the corpus.
	df := make(map[string]int)
	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokens := terms(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		index[term] = i
		// Smoothed IDF.
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	vectors := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		vec := make([]float64, len(terms))
		tf := make(map[int]int)
		total := 0
		for _, tok := range tokens {
			if idx, ok := index[tok]; ok {
				tf[idx]++
				total++
			}
		}
		if total > 0 {
			for idx, count := range tf {
				vec[idx] = float64(count) / float64(total) * idf[idx]
			}
			normalize(vec)
		}
		vectors[i] = vec
	}
	return vectors
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// terms filters stopwords out of a document's tokens and folds plurals
// onto their singular form so "jackets" and "jacket" count as one term.
// Stopwords are matched before singularizing; inflection rules mangle
// short function words ("this", "has") rather than leaving them alone.
func terms(doc string) []string {
	tokens := tokenize(doc)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, isStop := stopwords[tok]; isStop {
			continue
		}
		out = append(out, inflection.Singular(tok))
	}
	return out
}

func normalize(vec []float64) {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
}

// cosineSimilarity between two vectors of equal length.
func cosineSimilarity(a, b []float64) float64 {
	dot, normA, normB := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now", "not", "no", "all", "any", "each", "both",
		"more", "most", "other", "some", "only", "their", "they", "them",
		"its", "his", "her", "our", "your", "my", "we", "you", "he",
		"she", "has", "have", "had", "do", "does", "did", "what", "which",
		"who", "whom", "when", "where", "why", "how",
		// Boilerplate that nearly every trend statement carries and that
		// says nothing about which garment the statement is about.
		"trend", "trends", "trendy", "style", "styles", "stylish",
		"fashion", "fashions", "fashionable", "look", "looks", "wear",
		"back", "return", "returns", "returning", "rise", "rising",
		"new", "season", "seasons", "year", "popular",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
