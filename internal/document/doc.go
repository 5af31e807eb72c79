// Package document reads and writes the multi-document YAML streams beets
// exchanges with its editor, and rewrites such a file in place.
//
// Edit keeps the on-disk file untouched until every document has been decoded
// and processed in memory. Only then is the file rewound, truncated, and
// rewritten through the same handle, so beets sees the new content at the same
// path (and inode) when its editor exits.
package document
