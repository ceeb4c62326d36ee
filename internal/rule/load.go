package rule

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"sand-ca/internal/core"
	"sand-ca/internal/particle"
)

const (
	tokenAny     = "any"
	tokenUnknown = "?"
	tokenVacant  = "."
)

// File is the YAML document holding a rule set.
type File struct {
	Rules []FileRule `yaml:"rules"`
}

// FileRule is the on-disk form of a rule. Patterns are lists of rows, top row
// first, each cell a particle name or one of "any", "?" and ".".
type FileRule struct {
	Name     string       `yaml:"name,omitempty"`
	Priority *int         `yaml:"priority,omitempty"`
	Input    [][]string   `yaml:"input"`
	Outputs  []FileOutput `yaml:"outputs"`
}

// FileOutput is one weighted rewrite of a FileRule.
type FileOutput struct {
	Probability float64    `yaml:"probability"`
	Grid        [][]string `yaml:"grid"`
}

// ParseToken resolves one pattern cell.
func ParseToken(tok string) (Occupancy[particle.Kind], error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case tokenAny, "*":
		return OccupiedByAny[particle.Kind](), nil
	case tokenUnknown:
		return Unknown[particle.Kind](), nil
	case tokenVacant, "empty":
		return Vacant[particle.Kind](), nil
	}
	k, err := particle.ParseKind(tok)
	if err != nil {
		return Occupancy[particle.Kind]{}, err
	}
	return OccupiedBy(k), nil
}

func parsePattern(rows [][]string) (*core.Grid[Occupancy[particle.Kind]], error) {
	cells := make([][]Occupancy[particle.Kind], len(rows))
	for y, row := range rows {
		cells[y] = make([]Occupancy[particle.Kind], len(row))
		for x, tok := range row {
			o, err := ParseToken(tok)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			cells[y][x] = o
		}
	}
	return core.NewGrid(cells)
}

func formatPattern(g *core.Grid[Occupancy[particle.Kind]]) [][]string {
	var rows [][]string
	for _, row := range g.Rows() {
		out := make([]string, len(row))
		for i, o := range row {
			out[i] = o.String()
		}
		rows = append(rows, out)
	}
	return rows
}

// Build converts the file form into a validated rule.
func (fr FileRule) Build() (*Rule[particle.Kind], error) {
	input, err := parsePattern(fr.Input)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	outputs := make([]Output[particle.Kind], len(fr.Outputs))
	for i, fo := range fr.Outputs {
		g, err := parsePattern(fo.Grid)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		outputs[i] = Output[particle.Kind]{Grid: g, Probability: core.NewPercentage(fo.Probability)}
	}
	r := &Rule[particle.Kind]{Name: fr.Name, Input: input, Outputs: outputs, Priority: fr.Priority}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseYAML decodes a rule set. Rules that fail to parse or validate are
// skipped and reported together in the returned error; the valid ones are
// still returned.
func ParseYAML(data []byte) ([]*Rule[particle.Kind], error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	rules := make([]*Rule[particle.Kind], 0, len(f.Rules))
	var errs []error
	for i, fr := range f.Rules {
		r, err := fr.Build()
		if err != nil {
			label := fr.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			errs = append(errs, fmt.Errorf("rule %s: %w", label, err))
			continue
		}
		rules = append(rules, r)
	}
	return rules, errors.Join(errs...)
}

// EncodeYAML writes rules in the format read by ParseYAML.
func EncodeYAML(rules []*Rule[particle.Kind]) ([]byte, error) {
	f := File{Rules: make([]FileRule, len(rules))}
	for i, r := range rules {
		fr := FileRule{Name: r.Name, Priority: r.Priority, Input: formatPattern(r.Input)}
		for _, out := range r.Outputs {
			fr.Outputs = append(fr.Outputs, FileOutput{
				Probability: out.Probability.Value(),
				Grid:        formatPattern(out.Grid),
			})
		}
		f.Rules[i] = fr
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encode rules: %w", err)
	}
	return data, nil
}

// LoadYAML parses data and adds every valid rule to reg. Rejected rules are
// logged and reported in the returned error; the count is of rules added.
func LoadYAML(reg *Registry[particle.Kind], data []byte) (int, error) {
	rules, parseErr := ParseYAML(data)
	if parseErr != nil {
		reg.logger.Warn("rules skipped", "error", parseErr)
	}
	added, errs := reg.AddAll(rules)
	return added, errors.Join(append([]error{parseErr}, errs...)...)
}
