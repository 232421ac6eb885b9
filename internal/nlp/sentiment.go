package nlp

import "strings"

var positiveWords = []string{"good", "great", "excellent", "amazing", "wonderful", "fantastic", "helpful", "useful", "thank", "appreciate"}

var negativeWords = []string{"bad", "terrible", "awful", "horrible", "useless", "wrong", "problem", "issue", "dying", "sick"}

// scoreSentiment derives ratio scores from word-list containment. A token
// counts once per polarity if it contains any listed word as a substring.
func scoreSentiment(text string) Sentiment {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return Sentiment{Neutral: 1.0}
	}

	var positive, negative int
	for _, tok := range tokens {
		if containsAny(tok, positiveWords) {
			positive++
		}
		if containsAny(tok, negativeWords) {
			negative++
		}
	}

	total := float64(len(tokens))
	pos := float64(positive) / total
	neg := float64(negative) / total
	neutral := 1.0 - pos - neg
	if neutral < 0 {
		neutral = 0
	}

	return Sentiment{
		Positive: pos,
		Negative: neg,
		Neutral:  neutral,
		Compound: pos - neg,
	}
}

func containsAny(token string, words []string) bool {
	for _, w := range words {
		if strings.Contains(token, w) {
			return true
		}
	}
	return false
}
