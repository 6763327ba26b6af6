package corexs

// Debug enables verbose logging via the default Logger. Mirrors the
// teacher's package-level Debug/UseLocks/AlwaysBVH toggles, set from the
// CLI entry point rather than compiled in with a build tag.
var Debug = false

// UseNeighborLists is a package-level neighbor-list toggle, set by the CLI
// from the SKIP_NEIGHBOR_LISTS environment variable. Model.FindCell does not
// read it: whether the neighbor-list fast path is used is decided by
// FindCell's useNeighborLists argument.
var UseNeighborLists = true
