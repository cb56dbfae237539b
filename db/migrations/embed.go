// Package migrations embeds the goose migrations for every supported dialect.
package migrations

import "embed"

// FS holds one directory of migrations per database driver.
//
//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS
