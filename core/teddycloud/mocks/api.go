package mocks

import (
	"context"

	"tag-manager/core/linkage"
	"tag-manager/core/teddycloud"

	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of teddycloud.API
type API struct {
	mock.Mock
}

func (m *API) CheckConnection(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *API) FileIndex(ctx context.Context, path string) (*teddycloud.FileIndex, error) {
	args := m.Called(ctx, path)
	if index, ok := args.Get(0).(*teddycloud.FileIndex); ok {
		return index, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) TagIndex(ctx context.Context, boxID string) ([]teddycloud.Tag, error) {
	args := m.Called(ctx, boxID)
	if tags, ok := args.Get(0).([]teddycloud.Tag); ok {
		return tags, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) LastPlayedSetting(ctx context.Context, boxID string) (string, error) {
	args := m.Called(ctx, boxID)
	return args.String(0), args.Error(1)
}

func (m *API) CustomCatalog(ctx context.Context) ([]linkage.Entry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]linkage.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) OfficialCatalog(ctx context.Context) ([]linkage.Entry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]linkage.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) TriggerConfigReload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
