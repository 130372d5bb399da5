package trends

import "strings"

// DefaultDedupThreshold is the cosine similarity above which two trend
// statements are considered duplicates.
const DefaultDedupThreshold = 0.7

// Deduplicate merges near-duplicate trend statements using TF-IDF cosine
// similarity. It is a greedy single pass, not a transitive closure: each
// statement not yet merged absorbs its entire above-threshold neighbor
// set, and the merged texts are concatenated into one statement. A chain
// A~B, B~C where A and C fall below the threshold therefore yields two
// merged statements, not one. Callers depend on these exact merge counts;
// do not replace with transitive clustering.
func Deduplicate(statements []string, threshold float64) []string {
	if len(statements) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultDedupThreshold
	}

	vectors := vectorize(statements)

	merged := make([]bool, len(statements))
	unique := make([]string, 0, len(statements))

	for i := range statements {
		if merged[i] {
			continue
		}
		var parts []string
		for j := range statements {
			if merged[j] {
				continue
			}
			if j == i || cosineSimilarity(vectors[i], vectors[j]) > threshold {
				parts = append(parts, statements[j])
				merged[j] = true
			}
		}
		unique = append(unique, strings.Join(parts, " "))
	}

	return unique
}
