// Package scan walks an artist directory and runs the beets edits for every
// entry whose name matches an album-artist rule.
//
// The walk is one level deep and ordered by name. Matching only gates the
// edits; names on disk are never changed. By default the first failing entry
// stops the scan; KeepGoing collects failures and reports them together after
// the walk.
package scan
