package rewrite

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidExpression marks a rule expression that is not a valid regular expression.
var ErrInvalidExpression = errors.New("invalid rewrite expression")

// Match describes which rule and expression accepted a value.
type Match struct {
	Rule       Rule
	RuleIndex  int
	Expression string
	Exact      bool
}

// Kind returns "exact" or "regex" for log output.
func (m Match) Kind() string {
	if m.Exact {
		return "exact"
	}
	return "regex"
}

type compiledExpression struct {
	raw string
	re  *regexp.Regexp
}

type compiledRule struct {
	rule        Rule
	expressions []compiledExpression
}

// Matcher evaluates an ordered rule list with first-match-wins semantics.
type Matcher struct {
	rules []compiledRule
}

// Compile validates every expression and returns a ready matcher. The first
// invalid expression, in list order, aborts compilation.
func Compile(rules []Rule) (*Matcher, error) {
	m := &Matcher{rules: make([]compiledRule, 0, len(rules))}
	for i, rule := range rules {
		compiled := compiledRule{
			rule:        rule.Clone(),
			expressions: make([]compiledExpression, 0, len(rule.Expressions)),
		}
		for j, expr := range rule.Expressions {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w %q (rule %d, expression %d): %w", ErrInvalidExpression, expr, i+1, j+1, err)
			}
			compiled.expressions = append(compiled.expressions, compiledExpression{raw: expr, re: re})
		}
		m.rules = append(m.rules, compiled)
	}
	return m, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level fixtures.
func MustCompile(rules []Rule) *Matcher {
	m, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return m
}

// Find returns the first rule that accepts value. Within a rule, expressions
// are tried in configured order, each checked for exact equality before its
// regular expression is searched.
func (m *Matcher) Find(value string) (Match, bool) {
	if m == nil {
		return Match{}, false
	}
	for i, rule := range m.rules {
		for _, expr := range rule.expressions {
			if value == expr.raw {
				return Match{Rule: rule.rule.Clone(), RuleIndex: i, Expression: expr.raw, Exact: true}, true
			}
			if expr.re.MatchString(value) {
				return Match{Rule: rule.rule.Clone(), RuleIndex: i, Expression: expr.raw}, true
			}
		}
	}
	return Match{}, false
}

// Matches reports whether any rule accepts value.
func (m *Matcher) Matches(value string) bool {
	_, ok := m.Find(value)
	return ok
}

// Len returns the number of rules.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rules)
}
