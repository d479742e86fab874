// Package catalog fetches the remote template index and caches it locally.
// The cache is a pure optimization with timestamp-based staleness, never a
// correctness dependency: a failed fetch falls back to the remote's last
// good cached copy when one exists, whatever its age. Entries can declare a
// minimum CLI version and are marked incompatible rather than hidden.
package catalog
