// Package monorepo detects whether a target directory sits inside an existing
// multi-project workspace. It walks upward looking for a workspace root marker
// (pnpm-workspace.yaml or a package.json with a "workspaces" field) and derives
// the package manager, workspace config path, and shared tsconfig base from
// what it finds at the root.
package monorepo
