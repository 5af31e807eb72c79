// Package edit applies artist and album-artist rewrite rules to the files
// beets hands its editor during `beet edit` (tracks) and `beet edit -a`
// (albums).
package edit
