package ui

import (
	"fmt"
	"strings"

	"sand-ca/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 16
	headerBaseline = 18
	groupGap       = 8
	toggleSize     = 11
)

// hudLine is one row of the HUD panel. Rows with a key are clickable
// boolean toggles.
type hudLine struct {
	text     string
	key      string
	value    bool
	header   bool
	baseline int
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Status"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// layoutLines positions the status lines and parameter groups top to bottom.
func layoutLines(status []string, snap core.ParameterSnapshot) []hudLine {
	y := panelPadding + headerBaseline + lineHeight
	var lines []hudLine
	for _, s := range status {
		lines = append(lines, hudLine{text: s, baseline: y})
		y += lineHeight
	}
	for _, group := range snap.Groups {
		y += groupGap
		lines = append(lines, hudLine{text: group.Name, header: true, baseline: y})
		y += lineHeight
		for _, p := range group.Params {
			line := hudLine{baseline: y}
			if p.Type == core.ParamTypeBool {
				line.key = p.Key
				line.value = p.Value == "true"
				line.text = p.Label
			} else {
				line.text = fmt.Sprintf("%s: %s", p.Label, p.Value)
			}
			lines = append(lines, line)
			y += lineHeight
		}
	}
	return lines
}

// toggleAt returns the key of the toggle row containing panel-local y.
func toggleAt(lines []hudLine, y int) (string, bool, bool) {
	for _, l := range lines {
		if l.key == "" {
			continue
		}
		if y > l.baseline-lineHeight+2 && y <= l.baseline+2 {
			return l.key, l.value, true
		}
	}
	return "", false, false
}
