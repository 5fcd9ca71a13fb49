package backup

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrUnsupported means the database is not file-backed (Postgres);
	// file-copy backups only make sense for SQLite.
	ErrUnsupported = errors.New("backups are only supported for SQLite databases")
	ErrNotFound    = errors.New("backup not found")
	ErrInvalidName = errors.New("invalid backup name")
	ErrEmptyDB     = errors.New("database file is empty or missing")
)

const (
	backupPrefix = "backup_"
	backupSuffix = ".db"

	// keepLast bounds disk usage; older copies are pruned on every create.
	keepLast = 10
)

// Manager copies the SQLite database file into a backup directory. A zero
// dbPath disables it (Postgres deployments).
type Manager struct {
	dbPath string
	dir    string
}

func NewManager(dbPath, dir string) *Manager {
	return &Manager{dbPath: dbPath, dir: dir}
}

func (m *Manager) Enabled() bool { return m.dbPath != "" }

type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Create snapshots the database file and prunes old copies past the last 10.
func (m *Manager) Create() (*Info, error) {
	if !m.Enabled() {
		return nil, ErrUnsupported
	}

	st, err := os.Stat(m.dbPath)
	if err != nil || st.Size() == 0 {
		return nil, ErrEmptyDB
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().Format("2006-01-02_15-04-05") + backupSuffix
	dest := filepath.Join(m.dir, name)
	if err := copyFile(m.dbPath, dest); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	if err := m.prune(); err != nil {
		log.Printf("backup prune failed: %v", err)
	}

	return &Info{Name: name, Size: st.Size(), CreatedAt: time.Now()}, nil
}

// StartupBackup is the boot-time snapshot. A missing or empty database file
// is normal on first run and only logged.
func (m *Manager) StartupBackup() {
	if !m.Enabled() {
		return
	}
	info, err := m.Create()
	if err != nil {
		if !errors.Is(err, ErrEmptyDB) {
			log.Printf("startup backup failed: %v", err)
		}
		return
	}
	log.Printf("startup backup created: %s (%d bytes)", info.Name, info.Size)
}

// List returns existing backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if !m.Enabled() {
		return nil, ErrUnsupported
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, err
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: e.Name(), Size: fi.Size(), CreatedAt: fi.ModTime()})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name > infos[j].Name })
	return infos, nil
}

// Restore replaces the live database file with a backup. The current file is
// snapshotted first so a bad restore is itself recoverable. Callers must
// ensure no open connections are writing during the copy.
func (m *Manager) Restore(name string) error {
	if !m.Enabled() {
		return ErrUnsupported
	}
	if !isBackupName(name) {
		return ErrInvalidName
	}

	src := filepath.Join(m.dir, name)
	if _, err := os.Stat(src); err != nil {
		return ErrNotFound
	}

	// the snapshot keeps the backup_ prefix so it is listed, pruned and
	// restorable like any other copy
	if st, err := os.Stat(m.dbPath); err == nil && st.Size() > 0 {
		pre := filepath.Join(m.dir, backupPrefix+time.Now().Format("2006-01-02_15-04-05")+"_pre_restore"+backupSuffix)
		if err := copyFile(m.dbPath, pre); err != nil {
			return fmt.Errorf("failed to snapshot current database: %w", err)
		}
	}

	if err := copyFile(src, m.dbPath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

func (m *Manager) prune() error {
	infos, err := m.List()
	if err != nil {
		return err
	}
	for _, old := range infos[min(keepLast, len(infos)):] {
		if err := os.Remove(filepath.Join(m.dir, old.Name)); err != nil {
			return err
		}
	}
	return nil
}

// isBackupName doubles as path traversal protection: restore only ever
// touches files this manager could have written.
func isBackupName(name string) bool {
	if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
		return false
	}
	return name == filepath.Base(name) && !strings.ContainsAny(name, "/\\")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
