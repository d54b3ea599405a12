package svgtree

import (
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

type declaration struct {
	property, value string
}

// selector is a simple CSS selector: tag, .class, #id, or tag.class.
// Empty fields match everything; "*" is stored as an empty tag.
type selector struct {
	tag, class, id string
}

func (s selector) specificity() int {
	out := 0
	if s.id != "" {
		out += 100
	}
	if s.class != "" {
		out += 10
	}
	if s.tag != "" {
		out++
	}
	return out
}

func (s selector) matches(el *element) bool {
	if s.tag != "" && s.tag != el.tag {
		return false
	}
	if s.id != "" && s.id != el.attrs["id"] {
		return false
	}
	if s.class != "" {
		for _, cl := range strings.Fields(el.attrs["class"]) {
			if cl == s.class {
				return true
			}
		}
		return false
	}
	return true
}

// parseSelector returns false for unsupported selectors
// (combinators, attributes, pseudo classes).
func parseSelector(s string) (selector, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " >+~[]:") {
		return selector{}, false
	}
	var out selector
	if tag, id, ok := strings.Cut(s, "#"); ok {
		if strings.Contains(id, ".") || strings.Contains(id, "#") {
			return selector{}, false
		}
		out.tag, out.id = tag, id
	} else if tag, class, ok := strings.Cut(s, "."); ok {
		if strings.Contains(class, ".") {
			return selector{}, false
		}
		out.tag, out.class = tag, class
	} else {
		out.tag = s
	}
	if out.tag == "*" {
		out.tag = ""
	}
	return out, true
}

type cssRule struct {
	selector     selector
	declarations []declaration
}

// styleSheet stores the rules of the <style> elements,
// sorted by increasing specificity.
type styleSheet []cssRule

func convertDeclarations(decls []*css.Declaration) []declaration {
	out := make([]declaration, len(decls))
	for i, d := range decls {
		out[i] = declaration{property: strings.ToLower(d.Property), value: strings.TrimSpace(d.Value)}
	}
	return out
}

// parseStyleSheet adds the rules of `text` to the sheet.
// Unsupported selectors and at-rules are skipped.
func (ss *styleSheet) parseStyleSheet(text string) error {
	sheet, err := parser.Parse(text)
	if err != nil {
		return err
	}
	for _, rule := range sheet.Rules {
		if rule.Kind == css.AtRule {
			Logger().Debug("skipping CSS at-rule", "rule", rule.Name)
			continue
		}
		decls := convertDeclarations(rule.Declarations)
		for _, sel := range rule.Selectors {
			s, ok := parseSelector(sel)
			if !ok {
				Logger().Debug("unsupported CSS selector", "selector", sel)
				continue
			}
			*ss = append(*ss, cssRule{selector: s, declarations: decls})
		}
	}
	sort.SliceStable(*ss, func(i, j int) bool {
		return (*ss)[i].selector.specificity() < (*ss)[j].selector.specificity()
	})
	return nil
}

// parseStyleAttr parses the content of a style attribute.
func parseStyleAttr(s string) ([]declaration, error) {
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		return nil, err
	}
	return convertDeclarations(decls), nil
}
