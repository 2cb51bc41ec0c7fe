// Package filecache holds previously-read file contents keyed by path,
// alongside the file's modification time, so repeat requests for the same
// static file skip a disk read. It has no eviction and no invalidation on
// file change (§9): CacheSize only seeds the map's initial capacity. This
// is a known, documented limitation rather than an oversight — see
// DESIGN.md.
package filecache
