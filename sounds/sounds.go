// SPDX-License-Identifier: EPL-2.0

// Package sounds embeds the sounds that ship with the player.
package sounds

import (
	"embed"
	"io/fs"
)

//go:embed noise
var files embed.FS

// FS returns the bundled sounds, one directory per category.
func FS() fs.FS { return files }
