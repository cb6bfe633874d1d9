// Package versync keeps a single version string consistent across multiple
// project metadata files and synchronizes it with a git tag.
//
// It provides:
//   - A config model for the version manifest (version.toml): the canonical
//     version, the list of target files with dotted key paths, and the git
//     tag prefix.
//   - Format-preserving document accessors for TOML, JSON and YAML targets:
//     reading and rewriting the value at a dotted key path while leaving
//     comments, key order and whitespace untouched.
//   - A sync engine with Check (read-only comparison) and Apply (atomic
//     in-place rewrite) over all targets, isolating per-target failures.
//   - A git helper for computing and creating the release tag.
//
// The library is used by the versync CLI (the root package of this module)
// and can be embedded into other Go programs:
//
//	cfg, err := versync.LoadConfig(afero.NewOsFs(), "version.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results := versync.NewEngine(cfg).Check()
//	os.Exit(versync.CheckExitCode(results))
package versync
