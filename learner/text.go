// SPDX-License-Identifier: MIT
package learner

import (
	"sort"
	"strings"
)

// textDelimiters is the fixed, locale-independent character class text
// columns are split on (spec §6 "the exact set is a fixed constant, not
// locale-dependent").
const textDelimiters = "\t\v\n\r\f \";[]\\'"

// Tokenize splits s on textDelimiters and lowercases every token before
// vocabulary lookup (spec §6). Empty tokens produced by adjacent delimiters
// are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(textDelimiters, r)
	})
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}

	return fields
}

// Vocabulary maps tokens to a dense index, built from a corpus of documents
// by document frequency (original_source's FeatureLearner.hpp "minimum
// document frequency used for the vocabulary" / "size of the vocabulary").
type Vocabulary struct {
	index map[string]int
	terms []string
}

// BuildVocabulary tokenizes every document, keeps terms appearing in at
// least minDocFreq documents, ranks the survivors by descending document
// frequency (ties broken lexicographically for determinism, spec §8
// property 7 "no non-deterministic hashing in hot paths"), and keeps at
// most maxSize of them.
func BuildVocabulary(documents []string, minDocFreq, maxSize int) *Vocabulary {
	docFreq := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for tok, freq := range docFreq {
		if freq >= minDocFreq {
			terms = append(terms, tok)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if docFreq[terms[i]] != docFreq[terms[j]] {
			return docFreq[terms[i]] > docFreq[terms[j]]
		}

		return terms[i] < terms[j]
	})
	if maxSize > 0 && len(terms) > maxSize {
		terms = terms[:maxSize]
	}

	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}

	return &Vocabulary{index: index, terms: terms}
}

// Size reports the vocabulary's term count.
func (v *Vocabulary) Size() int { return len(v.terms) }

// Terms returns the vocabulary's terms in index order.
func (v *Vocabulary) Terms() []string { return v.terms }

// CountVector tokenizes doc and returns a dense term-frequency vector over
// the vocabulary, one count per known term (out-of-vocabulary tokens are
// ignored, matching the mechanical, fixed-width DFS feature contract).
func (v *Vocabulary) CountVector(doc string) []float64 {
	counts := make([]float64, len(v.terms))
	for _, tok := range Tokenize(doc) {
		if i, ok := v.index[tok]; ok {
			counts[i]++
		}
	}

	return counts
}
