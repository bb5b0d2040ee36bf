// Package thumbdisk persists still-image thumbnails in SQLite.
//
// It serves the non-video resource types (images, animated images) whose
// thumbnails are cheap to regenerate but worth keeping across sessions.
// Entries are keyed by resource path, file mtime, and thumbnail width, so a
// re-exported image naturally invalidates its cached tile. Video-frame
// thumbnails live in internal/vthumb and never touch this store.
//
// The database is a cache, not an archive: Prune enforces age and size
// budgets, and a schema bump simply clears it.
package thumbdisk
