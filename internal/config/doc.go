// Package config manages user preferences stored at ~/.stencil/config.yaml.
// It exposes get/set/list/delete/reset over a small fixed key set (author,
// email, package manager, git-init and install defaults) that scaffold runs
// read opportunistically to pre-fill answers.
package config
