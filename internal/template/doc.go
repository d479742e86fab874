// Package template defines the template descriptor model and handles the
// declarative configuration artifact (template.config.json) that a template
// ships inside its own tree. It loads and schema-validates the artifact,
// merges it into a base descriptor, synthesizes a fallback descriptor when a
// template carries no artifact, and cleans build-time metadata out of the
// final project tree.
package template
