package dirstore

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
)

// fileName maps a logical key to a filesystem-safe file name.
//
// The stem is the MD5 hex digest of the key, so any key content is
// safe as a path component: separators, unicode, and empty strings all
// collapse to 32 hex characters. The key's trailing extension, if any,
// is appended after the stem so external tools that sniff file types
// by extension keep working on the stored files.
//
// MD5 is a naming function here, not a security boundary. Distinct
// keys colliding is bounded by MD5's collision resistance, which is
// plenty for a flat key-to-file layout.
func fileName(key string) string {
	sum := md5.Sum([]byte(key))

	return hex.EncodeToString(sum[:]) + filepath.Ext(key)
}

// hashName maps a logical directory name to its on-disk segment.
// Unlike fileName it never carries an extension.
func hashName(name string) string {
	sum := md5.Sum([]byte(name))

	return hex.EncodeToString(sum[:])
}
