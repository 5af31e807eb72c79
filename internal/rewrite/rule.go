package rewrite

// Rule is one configured rewrite: a set of match expressions plus the values
// written to the scalar (Single) and plural (Multi) field on a match.
type Rule struct {
	Expressions []string `yaml:"expressions" toml:"expressions"`
	Single      *string  `yaml:"single,omitempty" toml:"single,omitempty"`
	Multi       []string `yaml:"multi,omitempty" toml:"multi,omitempty"`
}

// HasSingle reports whether the rule sets the scalar field.
func (r Rule) HasSingle() bool {
	return r.Single != nil
}

// HasMulti reports whether the rule sets the plural field. An explicitly empty
// list counts as set.
func (r Rule) HasMulti() bool {
	return r.Multi != nil
}

// Inert reports whether the rule changes nothing even when it matches.
func (r Rule) Inert() bool {
	return !r.HasSingle() && !r.HasMulti()
}

// Clone returns a deep copy so callers can mutate the result freely.
func (r Rule) Clone() Rule {
	out := Rule{}
	if r.Expressions != nil {
		out.Expressions = append([]string{}, r.Expressions...)
	}
	if r.Single != nil {
		single := *r.Single
		out.Single = &single
	}
	if r.Multi != nil {
		out.Multi = append([]string{}, r.Multi...)
	}
	return out
}

// SingleValue returns the scalar replacement or "" when unset.
func (r Rule) SingleValue() string {
	if r.Single == nil {
		return ""
	}
	return *r.Single
}

// String is a convenience constructor for Single values in literals and tests.
func String(value string) *string {
	return &value
}
