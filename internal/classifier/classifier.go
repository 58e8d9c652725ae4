// Package classifier assigns a priority to grievance text by semantic
// similarity against per-priority template sentences. Templates and the
// input are embedded as hashed bag-of-words vectors and compared with
// cosine similarity.
package classifier

import (
	"fmt"
	"math"
	"strings"
)

type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Below this similarity the classifier is not confident enough to pick
// an extreme bucket and defaults to MEDIUM.
const minSimilarity = 0.3

const vectorDim = 512

var priorityTemplates = map[Priority][]string{
	PriorityCritical: {
		"life threatening emergency situation requires immediate action",
		"death threat murder rape severe violence critical condition",
		"victim is in grave danger needs urgent protection now",
		"medical emergency unconscious bleeding severe injury hospital",
		"immediate threat to life safety critical urgent emergency",
		"accused threatening to kill victim family in danger",
	},
	PriorityHigh: {
		"urgent matter needs immediate attention and action",
		"serious threat violence harassment physical assault",
		"victim requires urgent medical treatment hospital care",
		"immediate police protection needed safety concern",
		"urgent compensation required victim in financial crisis",
		"time sensitive matter delayed too long needs quick action",
	},
	PriorityMedium: {
		"payment compensation delayed pending verification issue",
		"document verification taking longer than expected time",
		"administrative delay processing issue needs resolution",
		"case status not updated waiting for officer response",
		"moderate concern requires attention but not urgent",
		"follow up needed on pending application request",
	},
	PriorityLow: {
		"general inquiry question about case status information",
		"routine update request non urgent matter",
		"clarification needed on process documentation",
		"minor issue can wait for resolution",
		"general information query about procedure timeline",
		"non critical administrative question or concern",
	},
}

var explanations = map[Priority]string{
	PriorityCritical: "Contains indicators of life-threatening situation or immediate danger",
	PriorityHigh:     "Indicates urgent matter requiring immediate attention",
	PriorityMedium:   "Suggests administrative delay or moderate concern",
	PriorityLow:      "Appears to be general inquiry or routine matter",
}

type Result struct {
	Priority    Priority             `json:"priority"`
	Confidence  float64              `json:"confidence"`
	Scores      map[Priority]float64 `json:"scores"`
	Explanation string               `json:"explanation"`
}

// Classifier holds precomputed template vectors. Construct once and share.
type Classifier struct {
	templateVectors map[Priority][]float64
}

func New() *Classifier {
	vectors := make(map[Priority][]float64, len(priorityTemplates))
	for priority, templates := range priorityTemplates {
		mean := make([]float64, vectorDim)
		for _, t := range templates {
			v := embed(t)
			for i := range mean {
				mean[i] += v[i]
			}
		}
		for i := range mean {
			mean[i] /= float64(len(templates))
		}
		vectors[priority] = mean
	}
	return &Classifier{templateVectors: vectors}
}

// ClassifyPriority returns the single best priority for the grievance text.
func (c *Classifier) ClassifyPriority(title, description, category string) Priority {
	text := combine(title, description, category)
	if len(text) < 10 {
		return PriorityLow
	}

	input := embed(text)
	best, bestScore := PriorityMedium, -1.0
	for priority, vec := range c.templateVectors {
		if score := cosine(input, vec); score > bestScore {
			best, bestScore = priority, score
		}
	}

	if bestScore < minSimilarity {
		return PriorityMedium
	}
	return best
}

// ClassifyWithConfidence returns the best priority plus normalized scores
// for every bucket.
func (c *Classifier) ClassifyWithConfidence(title, description, category string) Result {
	text := combine(title, description, category)
	if len(text) < 10 {
		return Result{
			Priority:   PriorityLow,
			Confidence: 0.5,
			Scores: map[Priority]float64{
				PriorityCritical: 0, PriorityHigh: 0, PriorityMedium: 0, PriorityLow: 0.5,
			},
			Explanation: explain(PriorityLow, 0.5),
		}
	}

	input := embed(text)
	scores := make(map[Priority]float64, len(c.templateVectors))
	total := 0.0
	for priority, vec := range c.templateVectors {
		s := math.Max(0, cosine(input, vec))
		scores[priority] = s
		total += s
	}
	if total > 0 {
		for p := range scores {
			scores[p] /= total
		}
	}

	best, confidence := PriorityMedium, -1.0
	for p, s := range scores {
		if s > confidence {
			best, confidence = p, s
		}
	}

	for p, s := range scores {
		scores[p] = round3(s)
	}

	return Result{
		Priority:    best,
		Confidence:  round3(confidence),
		Scores:      scores,
		Explanation: explain(best, confidence),
	}
}

func combine(title, description, category string) string {
	return strings.TrimSpace(title + ". " + description + ". " + category)
}

// embed maps text to a fixed-dimension vector: each token (and adjacent
// token pair) is hashed into a bucket and the bucket counts form the vector.
func embed(text string) []float64 {
	tokens := tokenize(text)
	vec := make([]float64, vectorDim)
	for i, tok := range tokens {
		vec[hashToken(tok)]++
		if i+1 < len(tokens) {
			vec[hashToken(tok+" "+tokens[i+1])] += 0.5
		}
	}
	return vec
}

func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

// FNV-1a into vectorDim buckets
func hashToken(tok string) int {
	var h uint32 = 2166136261
	for i := 0; i < len(tok); i++ {
		h ^= uint32(tok[i])
		h *= 16777619
	}
	return int(h % vectorDim)
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func explain(p Priority, confidence float64) string {
	level := "low"
	if confidence > 0.6 {
		level = "high"
	} else if confidence > 0.4 {
		level = "moderate"
	}
	return fmt.Sprintf("%s (confidence: %s)", explanations[p], level)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
