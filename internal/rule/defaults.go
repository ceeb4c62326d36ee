package rule

import (
	_ "embed"
	"fmt"

	"sand-ca/internal/particle"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// DefaultRulesYAML returns the embedded built-in rule set.
func DefaultRulesYAML() []byte { return defaultRulesYAML }

// DefaultRules parses the built-in sand and water rules.
func DefaultRules() []*Rule[particle.Kind] {
	rules, err := ParseYAML(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("rule: embedded rules.yaml: %v", err))
	}
	return rules
}
