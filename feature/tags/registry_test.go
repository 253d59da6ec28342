package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry(t *testing.T, overlay string, contentDirs ...string) *Registry {
	t.Helper()
	configPath := t.TempDir()
	contentPath := t.TempDir()

	if overlay != "" {
		require.NoError(t, os.WriteFile(filepath.Join(configPath, RegistryFileName), []byte(overlay), 0o644))
	}
	for _, dir := range contentDirs {
		require.NoError(t, os.MkdirAll(filepath.Join(contentPath, dir), 0o755))
	}
	return NewRegistry(configPath, contentPath, zap.NewNop())
}

func TestParseRegistrations(t *testing.T) {
	overlay := `core.server.port=443
overlay.CERT1.boxName=Kitchen Box
overlay.CERT2.boxName=Living Room
overlay.broken-line
overlay..boxName=nameless
toniebox.field=x
`
	r := newTestRegistry(t, overlay)
	boxes, err := r.Boxes()
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, "CERT1", boxes[0].CertificateID)
	assert.Equal(t, "Kitchen Box", boxes[0].Name)
	assert.Equal(t, "CERT2", boxes[1].CertificateID)
}

func TestBoxesSortedByName(t *testing.T) {
	overlay := "overlay.B.boxName=zulu\noverlay.A.boxName=Alpha\n"
	r := newTestRegistry(t, overlay)
	boxes, err := r.Boxes()
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, "Alpha", boxes[0].Name)
	assert.Equal(t, "zulu", boxes[1].Name)
}

func TestBoxesMissingRegistryFile(t *testing.T) {
	r := newTestRegistry(t, "")
	boxes, err := r.Boxes()
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestResolveContentDirectory(t *testing.T) {
	t.Run("Exact Match", func(t *testing.T) {
		r := newTestRegistry(t, "", "AABBCCDD11223344", "FFEE000011223344")
		assert.Equal(t, "AABBCCDD11223344", r.ResolveContentDirectory("AABBCCDD11223344"))
	})

	t.Run("Case Insensitive Match Keeps Directory Casing", func(t *testing.T) {
		r := newTestRegistry(t, "", "AABBCCDD11223344", "FFEE000011223344")
		assert.Equal(t, "AABBCCDD11223344", r.ResolveContentDirectory("aabbccdd11223344"))
	})

	t.Run("Single Directory Inference", func(t *testing.T) {
		r := newTestRegistry(t, "", "AABBCCDD11223344")
		assert.Equal(t, "AABBCCDD11223344", r.ResolveContentDirectory("ZZZZ"))
	})

	t.Run("Verbatim Fallback", func(t *testing.T) {
		r := newTestRegistry(t, "", "AA11223344556677", "BB11223344556677")
		assert.Equal(t, "ZZZZ", r.ResolveContentDirectory("ZZZZ"))
	})
}
