package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tag-manager/core/cache"
	"tag-manager/core/teddycloud"
	"tag-manager/core/teddycloud/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache() *cache.Cache {
	return cache.New(cache.DefaultTTLs(300, 60))
}

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, content, 0o644))
}

func headerIndex(headers map[string]*teddycloud.TAFHeader) *teddycloud.FileIndex {
	index := &teddycloud.FileIndex{Files: []teddycloud.File{}, Directories: []teddycloud.Directory{}}
	for name, h := range headers {
		index.Files = append(index.Files, teddycloud.File{Name: name, Header: h})
	}
	return index
}

func TestScannerLocal(t *testing.T) {
	t.Run("Finds And Enriches Local Files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Kids/story.taf", []byte("taf"))
		writeFile(t, root, "Kids/cover.png", []byte("png"))
		writeFile(t, root, ".hidden/secret.taf", []byte("taf"))

		api := new(mocks.API)
		api.On("FileIndex", mock.Anything, "Kids").Return(headerIndex(map[string]*teddycloud.TAFHeader{
			"story.taf": {AudioID: 42, SHA1Hash: "ABCDEF", TrackSeconds: []int{10, 20}},
		}), nil)

		s := NewScanner(api, root, newTestCache(), zap.NewNop())
		files, err := s.Files(context.Background())
		require.NoError(t, err)
		require.Len(t, files, 1)

		f := files[0]
		assert.Equal(t, "Kids/story.taf", f.Path)
		require.NotNil(t, f.AudioID)
		assert.Equal(t, int64(42), *f.AudioID)
		assert.Equal(t, "abcdef", f.Hash)
		assert.Equal(t, []int{10, 20}, f.TrackSeconds)
		api.AssertExpectations(t)
	})

	t.Run("Header Fetch Failure Is Isolated", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Good/a.taf", []byte("taf"))
		writeFile(t, root, "Bad/b.taf", []byte("taf"))

		api := new(mocks.API)
		api.On("FileIndex", mock.Anything, "Good").Return(headerIndex(map[string]*teddycloud.TAFHeader{
			"a.taf": {AudioID: 1, SHA1Hash: "aa"},
		}), nil)
		api.On("FileIndex", mock.Anything, "Bad").Return(nil, errors.New("unreachable"))

		s := NewScanner(api, root, newTestCache(), zap.NewNop())
		files, err := s.Files(context.Background())
		require.NoError(t, err)
		require.Len(t, files, 2)

		byPath := map[string]ContentFile{}
		for _, f := range files {
			byPath[f.Path] = f
		}
		assert.True(t, byPath["Good/a.taf"].HasHeader())
		assert.False(t, byPath["Bad/b.taf"].HasHeader())
		assert.Contains(t, byPath["Bad/b.taf"].HeaderError, "unreachable")
	})

	t.Run("Scan Is Cached Until Invalidated", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.taf", []byte("taf"))

		api := new(mocks.API)
		api.On("FileIndex", mock.Anything, "").Return(headerIndex(nil), nil)

		s := NewScanner(api, root, newTestCache(), zap.NewNop())

		_, err := s.Files(context.Background())
		require.NoError(t, err)
		_, err = s.Files(context.Background())
		require.NoError(t, err)
		api.AssertNumberOfCalls(t, "FileIndex", 1)

		assert.Equal(t, 1, s.Invalidate())
		_, err = s.Files(context.Background())
		require.NoError(t, err)
		api.AssertNumberOfCalls(t, "FileIndex", 2)
	})
}

func TestScannerRemoteFallback(t *testing.T) {
	t.Run("Walks Remote Index When Local Is Empty", func(t *testing.T) {
		root := t.TempDir() // exists but holds no content files

		api := new(mocks.API)
		api.On("FileIndex", mock.Anything, "").Return(&teddycloud.FileIndex{
			Files:       []teddycloud.File{},
			Directories: []teddycloud.Directory{{Name: "Albums"}, {Name: ".trash"}},
		}, nil)
		api.On("FileIndex", mock.Anything, "Albums").Return(&teddycloud.FileIndex{
			Files: []teddycloud.File{
				{Name: "song.taf", Size: 9, Header: &teddycloud.TAFHeader{AudioID: 7, SHA1Hash: "FF"}},
				{Name: "notes.txt", Size: 1},
			},
			Directories: []teddycloud.Directory{},
		}, nil)

		s := NewScanner(api, root, newTestCache(), zap.NewNop())
		files, err := s.Files(context.Background())
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "Albums/song.taf", files[0].Path)
		assert.Equal(t, int64(9), files[0].Size)
		require.NotNil(t, files[0].AudioID)
		assert.Equal(t, int64(7), *files[0].AudioID)
		assert.Equal(t, "ff", files[0].Hash)
		// .trash was never listed
		api.AssertNumberOfCalls(t, "FileIndex", 2)
	})

	t.Run("Root Listing Failure Fails The Scan", func(t *testing.T) {
		api := new(mocks.API)
		api.On("FileIndex", mock.Anything, "").Return(nil, errors.New("down"))

		s := NewScanner(api, t.TempDir(), newTestCache(), zap.NewNop())
		_, err := s.Files(context.Background())
		assert.Error(t, err)

		// The failure was not cached; a later scan retries.
		_, ok := s.cache.Get(cache.NamespaceLibrary, scanCacheKey+s.libraryPath)
		assert.False(t, ok)
	})
}

func TestScannerMtimeIndependence(t *testing.T) {
	// Scan output must not depend on file timestamps.
	root := t.TempDir()
	writeFile(t, root, "a.taf", []byte("taf"))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "a.taf"), old, old))

	api := new(mocks.API)
	api.On("FileIndex", mock.Anything, "").Return(headerIndex(nil), nil)

	s := NewScanner(api, root, newTestCache(), zap.NewNop())
	files, err := s.Files(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
