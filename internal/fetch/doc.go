// Package fetch downloads a template's files into a target directory. It is
// the transport boundary of a scaffold operation: a shallow git clone into a
// temporary directory followed by an atomic rename, so a failed download
// never leaves a half-populated project behind.
package fetch
