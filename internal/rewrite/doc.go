// Package rewrite holds the user-configured rewrite rules and the matcher that
// picks the rule applying to a metadata value.
//
// A rule lists expressions that are tried in order. Each expression matches a
// value either by exact string equality or, failing that, as an unanchored
// regular expression. The first rule with a matching expression wins; later
// rules are never consulted. Compile all expressions up front with Compile so
// a broken pattern fails the invocation before any file is touched.
package rewrite
