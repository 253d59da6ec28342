package catalog

import (
	"context"
	"testing"

	"tag-manager/core/cache"
	"tag-manager/core/linkage"
	"tag-manager/core/storage/mocks"
	tcmocks "tag-manager/core/teddycloud/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, api *tcmocks.API, backups *BackupStore) *Service {
	t.Helper()
	m := NewManager(t.TempDir(), zap.NewNop())
	c := cache.New(cache.DefaultTTLs(300, 60))
	return NewService(m, api, c, backups, zap.NewNop())
}

func TestServiceList(t *testing.T) {
	api := new(tcmocks.API)
	api.On("CustomCatalog", mock.Anything).Return([]linkage.Entry{
		{No: "1", Model: "900001"},
		{No: "2", Model: "900002"},
	}, nil)

	svc := newTestService(t, api, nil)

	report, err := svc.List(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Len(t, report.Items, 1)
	assert.Equal(t, 2, report.TotalCount)
	assert.True(t, report.HasNext)

	// Second page hits the cache, not the API.
	_, err = svc.List(context.Background(), 1, 1)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "CustomCatalog", 1)
}

func TestServiceGet(t *testing.T) {
	api := new(tcmocks.API)
	api.On("CustomCatalog", mock.Anything).Return([]linkage.Entry{
		{No: "1", Model: "900001"},
	}, nil)

	svc := newTestService(t, api, nil)

	entry, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "900001", entry.Model)

	_, err = svc.Get(context.Background(), "7")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceMutationsInvalidateAndReload(t *testing.T) {
	api := new(tcmocks.API)
	api.On("CustomCatalog", mock.Anything).Return([]linkage.Entry{}, nil)
	api.On("TriggerConfigReload", mock.Anything).Return(nil)

	svc := newTestService(t, api, nil)

	// Prime the cache, then mutate.
	_, err := svc.List(context.Background(), 0, 10)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), linkage.Entry{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "900001", created.Model)
	api.AssertCalled(t, "TriggerConfigReload", mock.Anything)

	// The cached listing was dropped by the mutation.
	_, err = svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "CustomCatalog", 2)
}

func TestServiceBackupUpload(t *testing.T) {
	api := new(tcmocks.API)
	api.On("TriggerConfigReload", mock.Anything).Return(nil)

	store := new(mocks.Client)
	store.On("BucketExists", mock.Anything, "backups").Return(true, nil)
	store.On("PutObject", mock.Anything, "backups", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := newTestService(t, api, NewBackupStore(store, "backups", zap.NewNop()))

	// First create: no previous file, nothing to upload.
	_, err := svc.Create(context.Background(), linkage.Entry{Title: "a"})
	require.NoError(t, err)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Second create uploads the previous file content.
	_, err = svc.Create(context.Background(), linkage.Entry{Title: "b"})
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "PutObject", 1)
}
