// Package main hosts the beets-edit CLI entrypoint and command graph.
//
// beets-edit is installed as the EDITOR for `beet edit`: beets writes the
// selected items or albums to a temporary YAML file, runs the editor on it,
// and re-reads the file afterwards. The edit-tracks and edit-album commands
// rewrite that file in place using the configured rules. The run command
// drives the whole loop for every matching directory under the current one.
//
// Keep this package lean: behaviour lives in the internal packages and is
// only wired together here.
package main
