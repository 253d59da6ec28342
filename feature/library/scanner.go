package library

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"tag-manager/core/cache"
	"tag-manager/core/teddycloud"

	"go.uber.org/zap"
)

// ContentFile is one discovered audio asset. AudioID and Hash are present
// only when header enrichment succeeded; HeaderError records why it did not,
// so partial-failure scans stay visible instead of silently absorbed.
type ContentFile struct {
	// Path is relative to the library root, forward slashes.
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	AudioID      *int64 `json:"audio_id,omitempty"`
	Hash         string `json:"hash,omitempty"`
	TrackSeconds []int  `json:"track_seconds,omitempty"`
	HeaderError  string `json:"header_error,omitempty"`
}

// HasHeader reports whether enrichment supplied technical header data.
func (f ContentFile) HasHeader() bool {
	return f.AudioID != nil || f.Hash != ""
}

const (
	contentExt   = ".taf"
	scanCacheKey = "taf_files:"
)

// Scanner enumerates the audio library and enriches files with technical
// headers fetched from the device. Results are cached by content-root key.
type Scanner struct {
	api         teddycloud.API
	libraryPath string
	cache       *cache.Cache
	logger      *zap.Logger
}

// NewScanner creates a scanner over the given local library root.
func NewScanner(api teddycloud.API, libraryPath string, c *cache.Cache, logger *zap.Logger) *Scanner {
	return &Scanner{
		api:         api,
		libraryPath: libraryPath,
		cache:       c,
		logger:      logger,
	}
}

// Files returns all content files, enriched with headers where possible.
// The full scan is cached under the library namespace; use Invalidate to
// force a rescan.
func (s *Scanner) Files(ctx context.Context) ([]ContentFile, error) {
	v, err := s.cache.Fetch(ctx, cache.NamespaceLibrary, scanCacheKey+s.libraryPath, func(ctx context.Context) (any, error) {
		return s.scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]ContentFile), nil
}

// Invalidate drops all cached scan results for this scanner's root.
func (s *Scanner) Invalidate() int {
	return s.cache.InvalidatePrefix(cache.NamespaceLibrary + ":" + scanCacheKey + s.libraryPath)
}

// scan runs the two discovery strategies and then enrichment. The remote
// listing is used only when the local volume yields zero files, which
// covers deployments where the library is not mounted locally.
func (s *Scanner) scan(ctx context.Context) ([]ContentFile, error) {
	files := s.scanLocal()
	if len(files) == 0 {
		remote, err := s.scanRemote(ctx)
		if err != nil {
			return nil, err
		}
		files = remote
	}

	s.enrich(ctx, files)

	s.logger.Info("Library scan complete",
		zap.String("root", s.libraryPath),
		zap.Int("files", len(files)),
	)
	return files, nil
}

// scanLocal walks the mounted library volume. A missing or unreadable root
// is not an error here; it simply yields zero files and lets the remote
// strategy take over.
func (s *Scanner) scanLocal() []ContentFile {
	var files []ContentFile

	err := filepath.WalkDir(s.libraryPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("Skipping unreadable path", zap.String("path", p), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != s.libraryPath {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), contentExt) {
			return nil
		}

		rel, relErr := filepath.Rel(s.libraryPath, p)
		if relErr != nil {
			return nil
		}

		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}

		files = append(files, ContentFile{
			Path: filepath.ToSlash(rel),
			Name: d.Name(),
			Size: size,
		})
		return nil
	})
	if err != nil {
		s.logger.Debug("Local library walk failed", zap.String("root", s.libraryPath), zap.Error(err))
	}

	return files
}

// scanRemote walks the device file index iteratively via a worklist,
// skipping hidden directories. A failed listing of the root fails the scan;
// a failed subdirectory listing only prunes that branch.
func (s *Scanner) scanRemote(ctx context.Context) ([]ContentFile, error) {
	var files []ContentFile

	pending := []string{""}
	for len(pending) > 0 {
		dir := pending[0]
		pending = pending[1:]

		index, err := s.api.FileIndex(ctx, dir)
		if err != nil {
			if dir == "" {
				return nil, err
			}
			s.logger.Warn("Remote directory listing failed", zap.String("dir", dir), zap.Error(err))
			continue
		}

		for _, f := range index.Files {
			if f.IsDir || strings.HasPrefix(f.Name, ".") {
				continue
			}
			if !strings.EqualFold(path.Ext(f.Name), contentExt) {
				continue
			}
			cf := ContentFile{
				Path: path.Join(dir, f.Name),
				Name: f.Name,
				Size: f.Size,
			}
			applyHeader(&cf, f.Header)
			files = append(files, cf)
		}

		for _, sub := range index.Directories {
			if strings.HasPrefix(sub.Name, ".") {
				continue
			}
			pending = append(pending, path.Join(dir, sub.Name))
		}
	}

	return files, nil
}

// enrich fetches one directory listing per distinct parent directory of
// files still lacking headers. All fetches are dispatched concurrently;
// each failure is isolated to its directory and recorded per file.
func (s *Scanner) enrich(ctx context.Context, files []ContentFile) {
	byDir := make(map[string][]int)
	for i := range files {
		if files[i].HasHeader() {
			continue
		}
		dir := path.Dir(files[i].Path)
		if dir == "." {
			dir = ""
		}
		byDir[dir] = append(byDir[dir], i)
	}
	if len(byDir) == 0 {
		return
	}

	type dirResult struct {
		dir     string
		headers map[string]*teddycloud.TAFHeader
		err     error
	}

	results := make(chan dirResult, len(byDir))
	var wg sync.WaitGroup
	for dir := range byDir {
		wg.Add(1)
		go func(dir string) {
			defer wg.Done()
			index, err := s.api.FileIndex(ctx, dir)
			if err != nil {
				results <- dirResult{dir: dir, err: err}
				return
			}
			headers := make(map[string]*teddycloud.TAFHeader, len(index.Files))
			for _, f := range index.Files {
				if f.Header != nil {
					headers[f.Name] = f.Header
				}
			}
			results <- dirResult{dir: dir, headers: headers}
		}(dir)
	}
	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			s.logger.Warn("Header fetch failed, files stay unenriched",
				zap.String("dir", res.dir),
				zap.Error(res.err),
			)
			for _, i := range byDir[res.dir] {
				files[i].HeaderError = res.err.Error()
			}
			continue
		}
		for _, i := range byDir[res.dir] {
			applyHeader(&files[i], res.headers[files[i].Name])
		}
	}
}

func applyHeader(f *ContentFile, h *teddycloud.TAFHeader) {
	if h == nil {
		return
	}
	id := h.AudioID
	f.AudioID = &id
	f.Hash = strings.ToLower(h.SHA1Hash)
	f.TrackSeconds = h.TrackSeconds
}
