// Package classify pre-fills category, unit and volume for invoice line items.
// All functions are total: noisy OCR text degrades to a fallback, never an error.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"oficina-import/internal/invoice/match"
	"oficina-import/internal/invoice/model"
)

// reViscosity matches SAE grades like "5W30", "15w-40". Lubricants are always
// sold by volume.
var reViscosity = regexp.MustCompile(`(?i)\d+w-?\d+`)

type compiledRule struct {
	Rule
	all  []*regexp.Regexp
	none []*regexp.Regexp
}

func (r compiledRule) matches(s string) bool {
	for _, re := range r.all {
		if !re.MatchString(s) {
			return false
		}
	}
	for _, re := range r.none {
		if re.MatchString(s) {
			return false
		}
	}
	return true
}

// Classifier evaluates an ordered RuleSet. Safe for concurrent use.
type Classifier struct {
	codes        []compiledRule
	descriptions []compiledRule
}

// New compiles the rule set once.
func New(rs RuleSet) (*Classifier, error) {
	codes, err := compileRules(rs.Codes)
	if err != nil {
		return nil, err
	}
	descs, err := compileRules(rs.Descriptions)
	if err != nil {
		return nil, err
	}
	return &Classifier{codes: codes, descriptions: descs}, nil
}

// MustNew is New for tables known to be valid.
func MustNew(rs RuleSet) *Classifier {
	c, err := New(rs)
	if err != nil {
		panic(err)
	}
	return c
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if len(r.All) == 0 {
			return nil, fmt.Errorf("rule %q has no patterns", r.Name)
		}
		cr := compiledRule{Rule: r}
		for _, p := range r.All {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
			}
			cr.all = append(cr.all, re)
		}
		for _, p := range r.None {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
			}
			cr.none = append(cr.none, re)
		}
		out = append(out, cr)
	}
	return out, nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(p, "(?i)") {
		p = "(?i)" + p
	}
	return regexp.Compile(p)
}

// Classify returns exactly one tag for a line item.
//
// Order: explicit supplier code, viscosity grade, filter codes embedded in the
// description, description keywords, OTHER.
func (c *Classifier) Classify(description, supplierCode string) model.CategoryTag {
	tag, _ := c.Explain(description, supplierCode)
	return tag
}

// Explain is Classify that also reports which rule fired ("" for the fallback).
func (c *Classifier) Explain(description, supplierCode string) (model.CategoryTag, string) {
	if code := match.Fold(strings.TrimSpace(supplierCode)); code != "" {
		if r, ok := first(c.codes, code, true); ok {
			return r.Tag, r.Name
		}
	}

	desc := match.Fold(description)
	if strings.TrimSpace(desc) == "" {
		return model.CategoryOther, ""
	}
	if reViscosity.MatchString(desc) {
		return model.CategoryOilLubricant, "viscosity"
	}
	if r, ok := first(c.codes, desc, false); ok {
		return r.Tag, r.Name
	}
	if r, ok := first(c.descriptions, desc, false); ok {
		return r.Tag, r.Name
	}
	return model.CategoryOther, ""
}

func first(rules []compiledRule, s string, supplierCode bool) (compiledRule, bool) {
	for _, r := range rules {
		if r.CodeOnly && !supplierCode {
			continue
		}
		if r.matches(s) {
			return r, true
		}
	}
	return compiledRule{}, false
}
