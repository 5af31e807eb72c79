// Package beet drives the beets command line for the `run` workflow.
//
// Each edit spawns `beet edit` (or `beet edit -a`) with EDITOR pointing back
// at beets-edit, writes the "A" confirmation to the process's stdin, and waits
// for it to exit. The stdin pipe stays open until the process exits, so beets
// can read the confirmation whenever its prompt appears.
package beet
