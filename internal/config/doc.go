// Package config loads, normalizes, validates, and persists cropall
// configuration.
//
// Settings come from two layers: the defaults bundled into the binary
// (cropall_default.toml) and the user's cropall.toml, which only needs the
// keys it changes. After decoding, paths are expanded, the accepted extension
// list is canonicalized, and rules that depend on other keys are enforced
// (append_suffix turns confirm_overwrite off). Sessions mutate the loaded
// Config and write it back with Save when they finish.
package config
