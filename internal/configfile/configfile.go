// Package configfile persists the launch descriptor to disk with a
// backup-before-overwrite discipline: any existing descriptor is first copied
// byte-for-byte to a uniquely named sibling, and the new content lands via an
// atomic rename so a partial descriptor is never observable at the target
// path.
package configfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sparkst/claude-mcp-quickstart/internal/core"
	"github.com/sparkst/claude-mcp-quickstart/internal/descriptor"
)

// BackupRecord describes a backup taken before an overwrite. It exists only
// for logging; the backup file itself is never deleted automatically.
type BackupRecord struct {
	OriginalPath string
	BackupPath   string
	CreatedAt    time.Time
}

// PersistenceError wraps any I/O or serialization failure during persistence.
// It is fatal to the persistence step only; the prior descriptor, if any,
// remains untouched.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s of %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Manager persists descriptors. The clock is injectable for backup-name
// tests.
type Manager struct {
	now func() time.Time
}

// NewManager creates a Manager using the system clock.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Persist writes the descriptor to targetPath. When a file already exists
// there, it is backed up first; the returned record is nil when no backup was
// needed. Missing parent directories are created. Serialization happens
// before any file is touched, so a marshal failure leaves the original file
// intact.
func (m *Manager) Persist(d *descriptor.ConfigDescriptor, targetPath string) (*BackupRecord, error) {
	data, err := descriptor.Encode(d)
	if err != nil {
		return nil, &PersistenceError{Op: "serialize", Path: targetPath, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), core.PermDir); err != nil {
		return nil, &PersistenceError{Op: "mkdir", Path: filepath.Dir(targetPath), Err: err}
	}

	record, err := m.backupExisting(targetPath)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(targetPath, data); err != nil {
		return record, err
	}
	return record, nil
}

// backupExisting copies the current descriptor, if any, to its backup path.
// The backup name embeds the timestamp and a content hash, so two runs in the
// same second collide only when the content is identical, in which case the
// existing backup already is the byte-identical copy we would have written.
func (m *Manager) backupExisting(targetPath string) (*BackupRecord, error) {
	original, err := os.ReadFile(targetPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "backup read", Path: targetPath, Err: err}
	}

	createdAt := m.now()
	backupPath := backupName(targetPath, createdAt, original)
	record := &BackupRecord{
		OriginalPath: targetPath,
		BackupPath:   backupPath,
		CreatedAt:    createdAt,
	}

	f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, core.PermOwnerRW)
	if err != nil {
		if os.IsExist(err) {
			return record, nil
		}
		return nil, &PersistenceError{Op: "backup write", Path: backupPath, Err: err}
	}
	if _, err := f.Write(original); err != nil {
		_ = f.Close()
		return nil, &PersistenceError{Op: "backup write", Path: backupPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &PersistenceError{Op: "backup write", Path: backupPath, Err: err}
	}
	return record, nil
}

func backupName(targetPath string, now time.Time, content []byte) string {
	ext := filepath.Ext(targetPath)
	stem := strings.TrimSuffix(targetPath, ext)
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%s.backup.%d-%s%s", stem, now.Unix(), hex.EncodeToString(sum[:4]), ext)
}

// writeAtomic writes data to a temp file in the target's directory and
// renames it into place.
func writeAtomic(targetPath string, data []byte) error {
	dir := filepath.Dir(targetPath)
	tmp, err := os.CreateTemp(dir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "write", Path: targetPath, Err: err}
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &PersistenceError{Op: "write", Path: targetPath, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(core.PermOwnerRW); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &PersistenceError{Op: "write", Path: targetPath, Err: err}
	}
	if err := os.Rename(tmpName, targetPath); err != nil {
		_ = os.Remove(tmpName)
		return &PersistenceError{Op: "write", Path: targetPath, Err: err}
	}
	return nil
}
