// Package disk provides a filesystem-backed driven.BlobStore.
//
// Each key is one file directly under the cache root. Writes go to a
// temporary file that is renamed over the target, so a reader sees either
// the old or the new content and never a partial write.
package disk
