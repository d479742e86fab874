// Package transform applies named file-mutation steps to a freshly downloaded
// project tree. A Registry maps transformer names to behavior and is seeded
// with the six built-ins; an Engine executes a descriptor's ordered transform
// list against a shared Context, skipping unknown names with a warning and
// aborting on the first failure. The pipeline is an explicit non-atomic
// sequence of committed side effects: there is no rollback.
package transform
