package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) (*Manager, string) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("sqlite content v1"), 0o644))
	return NewManager(dbPath, filepath.Join(dir, "backups")), dbPath
}

func TestManager_CreateAndList(t *testing.T) {
	m, _ := setupManager(t)

	info, err := m.Create()
	require.NoError(t, err)
	assert.Contains(t, info.Name, "backup_")
	assert.EqualValues(t, len("sqlite content v1"), info.Size)

	infos, err := m.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, info.Name, infos[0].Name)
}

func TestManager_Create_EmptyDB(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "empty.db")
	require.NoError(t, os.WriteFile(dbPath, nil, 0o644))

	m := NewManager(dbPath, filepath.Join(dir, "backups"))
	_, err := m.Create()
	assert.ErrorIs(t, err, ErrEmptyDB)
}

func TestManager_Prune_KeepsLastTen(t *testing.T) {
	m, _ := setupManager(t)

	// fake an existing pile of backups with sortable names
	require.NoError(t, os.MkdirAll(m.dir, 0o755))
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("backup_2020-01-%02d_00-00-00.db", i+1)
		require.NoError(t, os.WriteFile(filepath.Join(m.dir, name), []byte("old"), 0o644))
	}

	_, err := m.Create()
	require.NoError(t, err)

	infos, err := m.List()
	require.NoError(t, err)
	assert.Len(t, infos, keepLast)

	// the oldest ones are the casualties
	for _, info := range infos {
		assert.NotEqual(t, "backup_2020-01-01_00-00-00.db", info.Name)
	}
}

func TestManager_Restore(t *testing.T) {
	m, dbPath := setupManager(t)

	info, err := m.Create()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted"), 0o644))
	require.NoError(t, m.Restore(info.Name))

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite content v1", string(content))

	// the pre-restore state was snapshotted and shows up in the listing,
	// subject to pruning and restore like any other backup
	infos, err := m.List()
	require.NoError(t, err)
	var snapshot string
	for _, info := range infos {
		if strings.HasSuffix(info.Name, "_pre_restore.db") {
			snapshot = info.Name
		}
	}
	require.NotEmpty(t, snapshot)

	require.NoError(t, m.Restore(snapshot))
	content, err = os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "corrupted", string(content))
}

func TestManager_Restore_RejectsTraversal(t *testing.T) {
	m, _ := setupManager(t)

	assert.ErrorIs(t, m.Restore("../../etc/passwd"), ErrInvalidName)
	assert.ErrorIs(t, m.Restore("backup_../x.db"), ErrInvalidName)
	assert.ErrorIs(t, m.Restore("notabackup.db"), ErrInvalidName)
	assert.ErrorIs(t, m.Restore("backup_does_not_exist.db"), ErrNotFound)
}

func TestManager_DisabledForPostgres(t *testing.T) {
	m := NewManager("", t.TempDir())

	_, err := m.Create()
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = m.List()
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, m.Restore("backup_x.db"), ErrUnsupported)
}
