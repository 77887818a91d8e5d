// Package classify turns visible page text plus structured hints into a
// sentiment, a content type and a doom score. The Heuristic implementation is
// deterministic and never fails; all of its knowledge lives in a Ruleset.
package classify

import (
	"math"
	"strings"
)

// Sentiment is the categorical polarity of a page
type Sentiment string

// Sentiments the classifier produces and the rollup recognizes
const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// ParseSentiment accepts exactly the three known values
func ParseSentiment(s string) (Sentiment, bool) {
	switch v := Sentiment(s); v {
	case Positive, Negative, Neutral:
		return v, true
	}
	return "", false
}

// UnknownContentType is used when neither the text nor a hint names a type
const UnknownContentType = "unknown"

// HintContentType is the only hint key the heuristic reads
const HintContentType = "content_type"

// Hints are structured page facts supplied by the caller
type Hints map[string]any

// ContentType returns the content_type hint when it is a non-empty string
func (h Hints) ContentType() string {
	s, _ := h[HintContentType].(string)
	return s
}

// Result is a classification. It carries no timestamp so equal inputs give equal results.
type Result struct {
	Sentiment    Sentiment `json:"sentiment"`
	ContentType  string    `json:"content_type"`
	DoomScore    float64   `json:"doom_score"`
	ScrollScore  float64   `json:"scroll_score"`
	ModelVersion string    `json:"model_version"`
}

// Classifier is the seam a model-backed implementation would fill
type Classifier interface {
	Classify(visibleText string, hints Hints) Result
}

// Heuristic is a compiled Ruleset. It is immutable and safe for concurrent use.
type Heuristic struct {
	version   string
	base      float64
	positive  map[string]struct{}
	negative  map[string]struct{}
	families  []compiledGroup
	tiers     []compiledGroup
	typeAdj   map[string]float64
	sentiment map[Sentiment]float64
}

type compiledGroup struct {
	name     string
	weight   float64
	keywords []string
}

func (g compiledGroup) matches(text string) bool {
	for _, k := range g.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// New compiles rs; a nil rs means the embedded default
func New(rs *Ruleset) *Heuristic {
	if rs == nil {
		rs = DefaultRuleset()
	}
	h := &Heuristic{
		version:   rs.Version,
		base:      rs.BaseScore,
		positive:  wordSet(rs.Lexicon.Positive),
		negative:  wordSet(rs.Lexicon.Negative),
		typeAdj:   make(map[string]float64, len(rs.ContentTypeAdjust)),
		sentiment: make(map[Sentiment]float64, len(rs.SentimentAdjust)),
	}
	for _, f := range rs.Families {
		h.families = append(h.families, compiledGroup{name: f.Name, keywords: normalizeAll(f.Keywords)})
	}
	for _, t := range rs.Tiers {
		h.tiers = append(h.tiers, compiledGroup{name: t.Name, weight: t.Weight, keywords: normalizeAll(t.Keywords)})
	}
	for k, v := range rs.ContentTypeAdjust {
		h.typeAdj[k] = v
	}
	for k, v := range rs.SentimentAdjust {
		h.sentiment[Sentiment(k)] = v
	}
	return h
}

// Load builds a Heuristic from path, or from the embedded ruleset when path is empty
func Load(path string) (*Heuristic, error) {
	if strings.TrimSpace(path) == "" {
		return New(nil), nil
	}
	rs, err := LoadRulesetFile(path)
	if err != nil {
		return nil, err
	}
	return New(rs), nil
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range normalizeAll(words) {
		set[w] = struct{}{}
	}
	return set
}

// Version is the model_version stamped on results
func (h *Heuristic) Version() string { return h.version }

// Classify scores visibleText; an empty string means no text was captured
func (h *Heuristic) Classify(visibleText string, hints Hints) Result {
	text := normalize(visibleText)
	hasText := visibleText != ""

	sent := h.sentimentOf(text)
	ctype := h.contentTypeOf(text, hasText, hints.ContentType())
	score := h.base
	if hasText {
		score = h.doomScore(text, ctype, sent)
	}
	return Result{
		Sentiment:    sent,
		ContentType:  ctype,
		DoomScore:    score,
		ScrollScore:  score,
		ModelVersion: h.version,
	}
}

func (h *Heuristic) sentimentOf(text string) Sentiment {
	var pos, neg int
	for _, w := range strings.Fields(text) {
		if _, ok := h.positive[w]; ok {
			pos++
		}
		if _, ok := h.negative[w]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	}
	return Neutral
}

func (h *Heuristic) contentTypeOf(text string, hasText bool, hint string) string {
	if hasText {
		for _, f := range h.families {
			if f.matches(text) {
				return f.name
			}
		}
	}
	if hint != "" {
		return hint
	}
	return UnknownContentType
}

func (h *Heuristic) doomScore(text, ctype string, sent Sentiment) float64 {
	score := h.base
	for _, t := range h.tiers {
		if t.matches(text) {
			score += t.weight
		}
	}
	score += h.typeAdj[ctype]
	score += h.sentiment[sent]
	return round2(math.Max(0, math.Min(1, score)))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
