package tags

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RegistryFileName is the device overlay config inside the config volume.
// Box registrations appear as "overlay.<certId>.boxName=<name>" lines among
// unrelated settings.
const RegistryFileName = "config.overlay.ini"

// Box is one registered playback device. The certificate id addresses the
// device API; the content directory id locates its tag state on disk.
type Box struct {
	CertificateID      string `json:"certificate_id"`
	ContentDirectoryID string `json:"content_directory_id"`
	Name               string `json:"name"`
}

// Registry reads box registrations and resolves certificate ids to content
// directories.
type Registry struct {
	configPath  string
	contentPath string
	logger      *zap.Logger
}

// NewRegistry creates a registry over the config and content volumes.
func NewRegistry(configPath, contentPath string, logger *zap.Logger) *Registry {
	return &Registry{
		configPath:  configPath,
		contentPath: contentPath,
		logger:      logger,
	}
}

const boxNamePrefix = "overlay."
const boxNameKey = ".boxName="

// parseRegistrations extracts box registrations from overlay config lines.
// Malformed lines are skipped with a debug log; the file carries many
// unrelated settings.
func (r *Registry) parseRegistrations(reader io.Reader) []Box {
	var boxes []Box

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, boxNamePrefix) {
			continue
		}
		idx := strings.Index(line, boxNameKey)
		if idx <= len(boxNamePrefix)-1 {
			r.logger.Debug("Skipping malformed overlay line", zap.String("line", line))
			continue
		}
		certID := line[len(boxNamePrefix):idx]
		name := line[idx+len(boxNameKey):]
		if certID == "" {
			r.logger.Debug("Skipping overlay line without certificate id", zap.String("line", line))
			continue
		}
		boxes = append(boxes, Box{CertificateID: certID, Name: name})
	}
	return boxes
}

// Boxes returns all registered boxes with resolved content directories,
// sorted by display name.
func (r *Registry) Boxes() ([]Box, error) {
	f, err := os.Open(filepath.Join(r.configPath, RegistryFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return []Box{}, nil
		}
		return nil, err
	}
	defer f.Close()

	boxes := r.parseRegistrations(f)
	dirs := r.contentDirectories()
	for i := range boxes {
		boxes[i].ContentDirectoryID = r.resolve(boxes[i].CertificateID, dirs)
	}

	sort.Slice(boxes, func(i, j int) bool {
		return strings.ToLower(boxes[i].Name) < strings.ToLower(boxes[j].Name)
	})
	return boxes, nil
}

// ResolveContentDirectory maps a certificate id to the on-disk content
// directory of its box.
func (r *Registry) ResolveContentDirectory(certID string) string {
	return r.resolve(certID, r.contentDirectories())
}

// resolve implements the four-step mapping: exact match, case-insensitive
// match, single-directory inference, verbatim fallback.
func (r *Registry) resolve(certID string, dirs []string) string {
	for _, dir := range dirs {
		if dir == certID {
			return dir
		}
	}
	for _, dir := range dirs {
		if strings.EqualFold(dir, certID) {
			return dir
		}
	}
	if len(dirs) == 1 {
		r.logger.Debug("Inferred single-box content directory",
			zap.String("cert_id", certID),
			zap.String("dir", dirs[0]),
		)
		return dirs[0]
	}
	r.logger.Debug("Content directory unresolved, using certificate id",
		zap.String("cert_id", certID),
	)
	return certID
}

// contentDirectories lists the box directories under the content volume.
func (r *Registry) contentDirectories() []string {
	entries, err := os.ReadDir(r.contentPath)
	if err != nil {
		r.logger.Debug("Content volume unreadable", zap.String("path", r.contentPath), zap.Error(err))
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}
