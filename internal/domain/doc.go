// Package domain contains the core domain model for Tigro.
//
// The domain is process- and persistence-agnostic: it does not depend on os/exec,
// YAML parsing, or the filesystem. Infra/adapters map into/from these types.
package domain
