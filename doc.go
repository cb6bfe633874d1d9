// Package main implements the versync CLI tool.
//
// versync keeps a single version string consistent across multiple project
// metadata files and synchronizes it with a git tag. The canonical version
// lives in a version.toml manifest together with the list of files to keep
// in sync; each target names a file, the dotted key path of its version
// field, and optionally the file format (inferred from the extension when
// absent).
//
// Command Usage:
//
//	versync [flags] <command>
//
// Commands:
//
//	check   Read every target and compare its value with the canonical
//	        version. Exits 0 when everything matches, 1 on any mismatch or
//	        missing key, 2 on a read or parse failure.
//	apply   Rewrite out-of-date targets in place, preserving comments, key
//	        order and whitespace. Already-correct targets are not touched,
//	        so apply is idempotent. Exits 0 on success, 2 on any failure.
//	tag     Create an annotated git tag named tag_prefix + version at the
//	        current commit. Refuses to tag while targets are out of sync or
//	        the repository is dirty. Exits 0 on success, 2 on failure.
//
// Flags:
//
//	--config:  Path to the configuration file. (Defaults to "version.toml")
//	--quiet:   Suppress all output.
//	--verbose: Print configuration details and per-target diagnostics.
//
// Example version.toml:
//
//	version = "1.2.3"
//
//	[[targets]]
//	file = "Cargo.toml"
//	key = "package.version"
//
//	[[targets]]
//	file = "package.json"
//	key = "version"
//
//	[git]
//	tag_prefix = "v"
//
// Typical release flow:
//
//	# edit version.toml, then:
//	versync apply
//	git commit -am "release 1.2.3"
//	versync tag
//
// For the programmatic API, see the documentation of the "pkg" package.
package main
