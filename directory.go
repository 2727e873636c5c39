// Package dirstore provides keyed, file-backed persistence: a logical
// directory storing arbitrary typed values under string keys, one file
// per key, with an in-memory cache overlay per [Item] and safe
// concurrent access across every handle addressing the same physical
// path.
//
// A [Directory] owns a path and the byte-level operations; an [Item]
// is a typed, cached handle bound to one key inside a Directory. All
// disk access for one path funnels through a single process-wide
// reader/writer lock, so independently constructed handles never race.
//
// Example:
//
//	dir, err := dirstore.NewTemporary("scratch")
//	if err != nil {
//	    return err
//	}
//
//	item := dirstore.NewItem(dir, "greeting", dirstore.JSON[string]())
//	if err := item.Set("hello"); err != nil {
//	    return err
//	}
package dirstore

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/calvinalkan/dirstore/internal/fs"
	"github.com/calvinalkan/dirstore/internal/platform"
)

// namespaceSegment identifies this system's storage area inside a
// shared base directory, so co-located unrelated data is not clobbered.
const namespaceSegment = "dirstore"

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// Directory is a physical filesystem location managed as a flat keyed
// store. The path is fixed for the life of the handle; the directory
// itself is created lazily on first write and removed only by [Directory.Clear].
//
// Construction performs no disk access.
type Directory struct {
	path  string
	lock  *pathLock
	fsys  fs.FS
	queue *writeQueue
}

// New returns a Directory rooted at path. Relative paths are resolved
// against the current working directory.
func New(path string) (*Directory, error) {
	return newDirectory(path, fs.NewReal())
}

// NewNamed returns a Directory for a logical name inside base, at
// base/dirstore/<hash(name)>.
func NewNamed(base, name string) (*Directory, error) {
	return newDirectory(namedPath(base, name), fs.NewReal())
}

// NewCache returns a named Directory under the user cache base
// directory. Suitable for data the host may reclaim.
func NewCache(name string) (*Directory, error) {
	return NewNamed(platform.CacheDir(platform.Environ()), name)
}

// NewData returns a named Directory under the user data base
// directory. Suitable for data that must survive cache cleanup.
func NewData(name string) (*Directory, error) {
	return NewNamed(platform.DataDir(platform.Environ()), name)
}

// NewTemporary returns a named Directory under the system temporary
// directory.
func NewTemporary(name string) (*Directory, error) {
	return NewNamed(platform.TempDir(), name)
}

func newDirectory(path string, fsys fs.FS) (*Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	return &Directory{
		path:  abs,
		lock:  locks.lockFor(abs),
		fsys:  fsys,
		queue: &writeQueue{},
	}, nil
}

// namedPath derives the on-disk path for a logical directory name.
func namedPath(base, name string) string {
	return filepath.Join(base, namespaceSegment, hashName(name))
}

// Path returns the absolute path this Directory is bound to.
func (d *Directory) Path() string {
	return d.path
}

// FilePath returns the absolute path of the file backing key. Pure and
// independent of whether the file exists; use it to hand a real path to
// external tools.
func (d *Directory) FilePath(key string) string {
	return filepath.Join(d.path, fileName(key))
}

// Data returns the stored bytes for key, or nil if no value is stored.
// Runs under the shared read grant, concurrently with other reads.
func (d *Directory) Data(key string) ([]byte, error) {
	d.lock.mu.RLock()
	defer d.lock.mu.RUnlock()

	data, err := d.fsys.ReadFile(d.FilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading %q: %w", key, err)
	}

	return data, nil
}

// WriteData stores data under key, replacing any previous value
// atomically: a concurrent reader sees either the old content or the
// new content, never a partial write. A nil data deletes the key's
// file; deleting an absent key is a no-op, not an error.
//
// Runs under the exclusive write grant.
func (d *Directory) WriteData(data []byte, key string) error {
	d.lock.mu.Lock()
	defer d.lock.mu.Unlock()

	return d.writeLocked(data, key)
}

// writeLocked performs the write. Caller holds the exclusive grant, so
// the ensure-directory check cannot race with a reader seeing a
// half-created directory.
func (d *Directory) writeLocked(data []byte, key string) error {
	path := d.FilePath(key)

	if data == nil {
		rmErr := d.fsys.Remove(path)
		if rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("removing %q: %w", key, rmErr)
		}

		return nil
	}

	ensureErr := d.ensureDirLocked()
	if ensureErr != nil {
		return ensureErr
	}

	writeErr := d.fsys.WriteFileAtomic(path, data, filePerms)
	if writeErr != nil {
		return fmt.Errorf("writing %q: %w", key, writeErr)
	}

	return nil
}

// ensureDirLocked creates the directory if missing. A non-directory
// entity occupying the path is removed and replaced.
func (d *Directory) ensureDirLocked() error {
	info, statErr := d.fsys.Stat(d.path)

	switch {
	case statErr == nil && info.IsDir():
		return nil
	case statErr == nil:
		rmErr := d.fsys.RemoveAll(d.path)
		if rmErr != nil {
			return fmt.Errorf("replacing non-directory %q: %w", d.path, rmErr)
		}
	case !os.IsNotExist(statErr):
		return fmt.Errorf("stat %q: %w", d.path, statErr)
	}

	mkErr := d.fsys.MkdirAll(d.path, dirPerms)
	if mkErr != nil {
		return fmt.Errorf("creating %q: %w", d.path, mkErr)
	}

	return nil
}

// Clear removes the entire directory subtree. No-op if the directory
// does not exist. Runs under the exclusive write grant.
func (d *Directory) Clear() error {
	d.lock.mu.Lock()
	defer d.lock.mu.Unlock()

	rmErr := d.fsys.RemoveAll(d.path)
	if rmErr != nil {
		return fmt.Errorf("clearing %q: %w", d.path, rmErr)
	}

	return nil
}

// DiskUsage returns the summed size in bytes of the directory's
// immediate file entries. Returns 0 if the directory does not exist or
// cannot be read. Non-recursive: the store keeps a flat key-to-file
// layout.
func (d *Directory) DiskUsage() int64 {
	d.lock.mu.RLock()
	defer d.lock.mu.RUnlock()

	entries, err := d.fsys.ReadDir(d.path)
	if err != nil {
		return 0
	}

	var total int64

	for _, entry := range entries {
		info, infoErr := entry.Info()
		if infoErr != nil || info.IsDir() {
			continue
		}

		total += info.Size()
	}

	return total
}

// Entries returns the directory's immediate entries sorted by name,
// or nil if the directory does not exist yet. File names are hashed
// keys; the store keeps no reverse mapping. Runs under the shared read
// grant.
func (d *Directory) Entries() ([]os.DirEntry, error) {
	d.lock.mu.RLock()
	defer d.lock.mu.RUnlock()

	entries, err := d.fsys.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %q: %w", d.path, err)
	}

	return entries, nil
}

// AvailableCapacity returns the free bytes on the volume holding the
// directory, or 0 if it cannot be determined. The directory itself may
// not exist yet; the nearest existing ancestor is consulted.
func (d *Directory) AvailableCapacity() int64 {
	path := d.path

	for {
		var st unix.Statfs_t

		err := unix.Statfs(path, &st)
		if err == nil {
			return int64(st.Bavail) * int64(st.Bsize)
		}

		parent := filepath.Dir(path)
		if parent == path {
			return 0
		}

		path = parent
	}
}

// Flush blocks until every deferred write queued before the call has
// completed. Durability of deferred writes is otherwise unconfirmed to
// the caller.
func (d *Directory) Flush() {
	d.queue.wait()
}
