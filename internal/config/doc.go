// Package config loads, normalizes, and validates the beets-edit rules file.
//
// The file lives at <user config dir>/beets/rename.yml unless a path is given
// explicitly. A missing file is created from an embedded sample with empty
// rule lists. YAML is the native format; a path ending in .toml is read as
// TOML with the same keys.
package config
