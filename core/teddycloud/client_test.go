package teddycloud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{URL: serverURL, APIBase: "/api", TimeoutSeconds: 5}, zap.NewNop())
}

func TestClient_BuildURL_StripsWebSuffix(t *testing.T) {
	c := NewClient(Config{URL: "http://docker/web", APIBase: "/api"}, zap.NewNop())
	assert.Equal(t, "http://docker/api/fileIndexV2", c.buildURL("fileIndexV2"))

	c = NewClient(Config{URL: "http://docker/", APIBase: "/api"}, zap.NewNop())
	assert.Equal(t, "http://docker/api/fileIndexV2", c.buildURL("/fileIndexV2"))
}

func TestClient_FileIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fileIndexV2", r.URL.Path)
		assert.Equal(t, "library", r.URL.Query().Get("special"))
		assert.Equal(t, "Wilma", r.URL.Query().Get("path"))
		// No "directories" key; the client must normalize it.
		w.Write([]byte(`{"files":[{"name":"wilma.taf","size":123,"tafHeader":{"audioId":42,"sha1Hash":"AB","trackSeconds":[10,20]}}]}`))
	}))
	defer srv.Close()

	index, err := newTestClient(srv.URL).FileIndex(context.Background(), "Wilma")
	require.NoError(t, err)
	require.Len(t, index.Files, 1)
	assert.NotNil(t, index.Directories)

	f := index.Files[0]
	assert.Equal(t, "wilma.taf", f.Name)
	require.NotNil(t, f.Header)
	assert.Equal(t, int64(42), f.Header.AudioID)
	assert.Equal(t, []int{10, 20}, f.Header.TrackSeconds)
}

func TestClient_FileIndex_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FileIndex(context.Background(), "")
	assert.Error(t, err)
}

func TestClient_TagIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getTagIndex", r.URL.Path)
		assert.Equal(t, "CERT1", r.URL.Query().Get("overlay"))
		w.Write([]byte(`{"tags":[{"ruid":"1a2b3c4d5e6f7890","source":"lib://a.taf","nocloud":true,"tonieInfo":{"model":"900001","series":"S"}}]}`))
	}))
	defer srv.Close()

	tags, err := newTestClient(srv.URL).TagIndex(context.Background(), "CERT1")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "1a2b3c4d5e6f7890", tags[0].RUID)
	assert.Equal(t, "900001", tags[0].TonieInfo.Model)
	assert.True(t, tags[0].NoCloud)
}

func TestClient_LastPlayedSetting_Normalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings/get/internal.last_ruid", r.URL.Path)
		w.Write([]byte("\"AABBCCDD11223344\"\n"))
	}))
	defer srv.Close()

	value, err := newTestClient(srv.URL).LastPlayedSetting(context.Background(), "CERT1")
	require.NoError(t, err)
	assert.Equal(t, "aabbccdd11223344", value)
}

func TestClient_Catalogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/toniesCustomJson":
			w.Write([]byte(`[{"no":"0","model":"900001","audio_id":["42"],"hash":["ab"],"series":"Custom","category":"custom"}]`))
		case "/api/toniesJson":
			// Official data uses numeric ids.
			w.Write([]byte(`[{"no":1,"model":"10-0001","audio_id":[77],"hash":["cd"],"series":"Official","category":"official"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	custom, err := c.CustomCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "900001", custom[0].Model)
	assert.Equal(t, []string{"42"}, []string(custom[0].AudioIDs))

	official, err := c.OfficialCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, official, 1)
	assert.Equal(t, []string{"77"}, []string(official[0].AudioIDs))
	assert.Equal(t, "1", official[0].No.String())
}

func TestClient_TriggerConfigReload(t *testing.T) {
	var wroteConfig, reloaded bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/triggerWriteConfig":
			wroteConfig = true
			// Non-200 here must not fail the reload.
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/toniesJsonUpdate":
			reloaded = true
		}
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).TriggerConfigReload(context.Background())
	require.NoError(t, err)
	assert.True(t, wroteConfig)
	assert.True(t, reloaded)
}
