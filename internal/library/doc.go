// Package library models the records beets writes into the temporary YAML
// file handed to its editor: one Track per item for `beet edit`, one Album per
// album for `beet edit -a`.
package library
