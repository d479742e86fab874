// Package scaffold drives one scaffold operation end to end: workspace
// detection, template download, configuration merge, answer collection, the
// transformation pipeline, and artifact cleanup. It powers the "stencil new"
// command. The pipeline mutates the downloaded tree in place and does not
// roll back, so a failure mid-run leaves a partially transformed project the
// caller must surface as such.
package scaffold
