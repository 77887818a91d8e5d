package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// DefaultModelVersion is reported when a ruleset does not name itself
const DefaultModelVersion = "heuristic-1.0"

// Family is a named group of content-type keywords
type Family struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tier is a doom-intensity keyword group with the weight it adds on a match
type Tier struct {
	Name     string   `yaml:"name"`
	Weight   float64  `yaml:"weight"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset is the data the heuristic runs on; swap it to retune without code changes
type Ruleset struct {
	Version   string  `yaml:"version"`
	BaseScore float64 `yaml:"base_score"`
	Lexicon   struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"lexicon"`
	Families          []Family           `yaml:"families"`
	Tiers             []Tier             `yaml:"tiers"`
	ContentTypeAdjust map[string]float64 `yaml:"content_type_adjust"`
	SentimentAdjust   map[string]float64 `yaml:"sentiment_adjust"`
}

// ParseRuleset decodes YAML, rejecting unknown keys, and validates the result
func ParseRuleset(b []byte) (*Ruleset, error) {
	var rs Ruleset
	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("classify: decode ruleset: %w", err)
	}
	if rs.Version == "" {
		rs.Version = DefaultModelVersion
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// LoadRulesetFile reads and parses a ruleset from disk
func LoadRulesetFile(path string) (*Ruleset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classify: read ruleset: %w", err)
	}
	return ParseRuleset(b)
}

// DefaultRuleset returns the embedded ruleset; it panics only if the embedded file is broken
func DefaultRuleset() *Ruleset {
	rs, err := ParseRuleset(embeddedRules)
	if err != nil {
		panic(err)
	}
	return rs
}

// Validate checks the structural rules the heuristic relies on
func (rs *Ruleset) Validate() error {
	if rs.BaseScore < 0 || rs.BaseScore > 1 {
		return fmt.Errorf("classify: base_score %.2f outside [0,1]", rs.BaseScore)
	}
	if len(rs.Families) == 0 {
		return fmt.Errorf("classify: ruleset has no content families")
	}
	for i, f := range rs.Families {
		if strings.TrimSpace(f.Name) == "" || len(f.Keywords) == 0 {
			return fmt.Errorf("classify: family %d needs a name and keywords", i)
		}
	}
	if len(rs.Tiers) == 0 {
		return fmt.Errorf("classify: ruleset has no doom tiers")
	}
	for _, t := range rs.Tiers {
		if len(t.Keywords) == 0 {
			return fmt.Errorf("classify: tier %q has no keywords", t.Name)
		}
		if t.Weight < -1 || t.Weight > 1 {
			return fmt.Errorf("classify: tier %q weight %.2f outside [-1,1]", t.Name, t.Weight)
		}
	}
	for k := range rs.SentimentAdjust {
		if _, ok := ParseSentiment(k); !ok {
			return fmt.Errorf("classify: sentiment_adjust key %q is not a sentiment", k)
		}
	}
	return nil
}
