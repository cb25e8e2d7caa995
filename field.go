package staffscout

import "strings"

// GuessField tags text with the field of study whose keywords occur most
// often. Ties go to the field listed first. Text without any keyword yields
// the empty string.
func (v *Vocabulary) GuessField(text string) string {
	lower := strings.ToLower(text)
	best, bestHits := "", 0
	for _, f := range v.Fields {
		hits := 0
		for _, kw := range f.Keywords {
			if kw == "" {
				continue
			}
			hits += strings.Count(lower, strings.ToLower(kw))
		}
		if hits > bestHits {
			best, bestHits = f.Name, hits
		}
	}
	return best
}
