package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tag-manager/core/linkage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(t.TempDir(), zap.NewNop())
}

func seedCatalog(t *testing.T, m *Manager, entries []linkage.Entry) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(m.Path(), data, 0o644))
}

func TestManagerLoad(t *testing.T) {
	t.Run("Missing File Is Empty Catalog", func(t *testing.T) {
		m := newTestManager(t)
		entries, err := m.Load()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Assigns Missing Sequence Numbers", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{
			{No: "3", Model: "900003"},
			{Model: "900004"},
		})

		entries, err := m.Load()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, linkage.FlexString("4"), entries[1].No)
	})
}

func TestManagerCreate(t *testing.T) {
	t.Run("Auto Assigns Model And No", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{{No: "1", Model: "900005"}})

		created, err := m.Create(linkage.Entry{Title: "New Story"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "900006", created.Model)
		assert.Equal(t, linkage.FlexString("2"), created.No)
		assert.Equal(t, linkage.CategoryCustom, created.Category)

		entries, err := m.Load()
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("First Model Starts At 900001", func(t *testing.T) {
		m := newTestManager(t)
		created, err := m.Create(linkage.Entry{Title: "First"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "900001", created.Model)
	})

	t.Run("Rejects Duplicate Model", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{{No: "1", Model: "900001"}})

		_, err := m.Create(linkage.Entry{Model: "900001"}, nil)
		assert.ErrorIs(t, err, ErrDuplicateModel)
	})

	t.Run("Official Models Do Not Advance Custom Counter", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{{No: "1", Model: "10-0001"}})

		created, err := m.Create(linkage.Entry{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "900001", created.Model)
	})

	t.Run("Keeps Backup Of Previous File", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{{No: "1", Model: "900001"}})

		var snapshot []byte
		_, err := m.Create(linkage.Entry{Title: "x"}, func(prev []byte) { snapshot = prev })
		require.NoError(t, err)
		assert.NotEmpty(t, snapshot)

		backups, err := filepath.Glob(m.Path() + ".backup.*")
		require.NoError(t, err)
		assert.Len(t, backups, 1)
	})
}

func TestManagerUpdate(t *testing.T) {
	t.Run("Partial Update Leaves Other Fields", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{
			{No: "1", Model: "900001", Title: "Old", Series: "Keep Me"},
		})

		title := "New"
		updated, err := m.Update("1", EntryUpdate{Title: &title}, nil)
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "Keep Me", updated.Series)
		assert.Equal(t, "900001", updated.Model)
	})

	t.Run("Unknown No Is NotFound", func(t *testing.T) {
		m := newTestManager(t)
		_, err := m.Update("99", EntryUpdate{}, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Model Collision Rejected", func(t *testing.T) {
		m := newTestManager(t)
		seedCatalog(t, m, []linkage.Entry{
			{No: "1", Model: "900001"},
			{No: "2", Model: "900002"},
		})

		model := "900001"
		_, err := m.Update("2", EntryUpdate{Model: &model}, nil)
		assert.ErrorIs(t, err, ErrDuplicateModel)
	})
}

func TestManagerDelete(t *testing.T) {
	m := newTestManager(t)
	seedCatalog(t, m, []linkage.Entry{
		{No: "1", Model: "900001"},
		{No: "2", Model: "900002"},
	})

	require.NoError(t, m.Delete("1", nil))

	entries, err := m.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "900002", entries[0].Model)

	assert.ErrorIs(t, m.Delete("1", nil), ErrNotFound)
}

func TestNextModelNumber(t *testing.T) {
	m := newTestManager(t)
	seedCatalog(t, m, []linkage.Entry{
		{No: "1", Model: "900010"},
		{No: "2", Model: "not-a-number"},
	})

	model, err := m.NextModelNumber()
	require.NoError(t, err)
	assert.Equal(t, "900011", model)
}
