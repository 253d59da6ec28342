package tags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tag-manager/core/linkage"
	"tag-manager/core/teddycloud"
	"tag-manager/core/utils"

	"go.uber.org/zap"
)

// Tag state files share one fixed name; the owning directory carries the
// first half of the uid and the file name's hex stem the second half.
const (
	stateFileName = "500304E0.json"
	uidSuffix     = "500304e0"
)

// Placeholder uids the hardware writes before a real tag was ever played.
const (
	placeholderPrefix = "00000001"
	zeroUID           = "0000000000000000"
)

// Sentinel errors surfaced to the handler layer.
var (
	ErrInvalidUID      = errors.New("tag uid must be 16 hexadecimal characters")
	ErrInvalidPath     = errors.New("content path is invalid")
	ErrTagFileNotFound = errors.New("tag state file not found")
)

// ValidateUID checks the 16-hex-character uid format.
func ValidateUID(uid string) error {
	if len(uid) != 16 || !isHex(uid) {
		return fmt.Errorf("%w: %q", ErrInvalidUID, uid)
	}
	return nil
}

// ValidateContentPath rejects absolute paths and traversal attempts in a
// library-relative content path.
func ValidateContentPath(path string) error {
	if path == "" || strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return nil
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// isPlaceholderUID reports whether a uid is a hardware placeholder rather
// than a real tag.
func isPlaceholderUID(uid string) bool {
	return uid == zeroUID || strings.HasPrefix(uid, placeholderPrefix)
}

// TagState is the persisted hardware state of one tag.
type TagState struct {
	UID     string `json:"uid"`
	Model   string `json:"model"`
	Source  string `json:"source"`
	NoCloud bool   `json:"nocloud"`
}

// StateStore reads and partially updates per-tag hardware state files under
// the content volume. Tags are never created here; the hardware creates
// them when a tag is first presented.
type StateStore struct {
	contentPath string
	api         teddycloud.API
	registry    *Registry
	logger      *zap.Logger
}

// NewStateStore creates a state store over the content volume.
func NewStateStore(contentPath string, api teddycloud.API, registry *Registry, logger *zap.Logger) *StateStore {
	return &StateStore{
		contentPath: contentPath,
		api:         api,
		registry:    registry,
		logger:      logger,
	}
}

// ListTagUIDs enumerates the tag uids persisted under one box directory.
func (s *StateStore) ListTagUIDs(boxDirID string) ([]string, error) {
	states, err := s.TagStates(boxDirID)
	if err != nil {
		return nil, err
	}
	uids := make([]string, 0, len(states))
	for _, st := range states {
		uids = append(uids, st.UID)
	}
	return uids, nil
}

// TagStates reads every tag state file under one box directory. Unreadable
// or malformed files are skipped with a debug log.
func (s *StateStore) TagStates(boxDirID string) ([]TagState, error) {
	boxDir := filepath.Join(s.contentPath, boxDirID)
	entries, err := os.ReadDir(boxDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TagState{}, nil
		}
		return nil, err
	}

	var states []TagState
	for _, e := range entries {
		if !e.IsDir() || len(e.Name()) != 8 || !isHex(e.Name()) {
			continue
		}
		uid := strings.ToLower(e.Name()) + uidSuffix
		if isPlaceholderUID(uid) {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(boxDir, e.Name(), stateFileName))
		if err != nil {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			s.logger.Debug("Skipping malformed tag state file",
				zap.String("dir", e.Name()), zap.Error(err))
			continue
		}

		states = append(states, TagState{
			UID:     uid,
			Model:   stringField(fields, "model"),
			Source:  stringField(fields, "source"),
			NoCloud: boolField(fields, "nocloud"),
		})
	}
	return states, nil
}

func stringField(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}

func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

// LastPlayed resolves the most recently played tag of a box.
//
// Tier 1 queries the device's live setting and is authoritative when it
// returns a valid non-placeholder uid. Tier 2 falls back to the newest
// state-file modification time under the box's content directory. Returns
// ok=false when neither tier yields a valid candidate.
func (s *StateStore) LastPlayed(ctx context.Context, certID string) (string, bool) {
	if value, err := s.api.LastPlayedSetting(ctx, certID); err == nil {
		if len(value) == 16 && isHex(value) && !isPlaceholderUID(value) {
			return value, true
		}
	} else {
		s.logger.Debug("Last played setting unavailable", zap.String("box_id", certID), zap.Error(err))
	}

	boxDir := filepath.Join(s.contentPath, s.registry.ResolveContentDirectory(certID))
	entries, err := os.ReadDir(boxDir)
	if err != nil {
		return "", false
	}

	var best string
	var bestMtime int64
	for _, e := range entries {
		if !e.IsDir() || len(e.Name()) != 8 || !isHex(e.Name()) {
			continue
		}
		uid := strings.ToLower(e.Name()) + uidSuffix
		if isPlaceholderUID(uid) {
			continue
		}
		info, err := os.Stat(filepath.Join(boxDir, e.Name(), stateFileName))
		if err != nil {
			continue
		}
		if mtime := info.ModTime().UnixNano(); best == "" || mtime > bestMtime {
			best = uid
			bestMtime = mtime
		}
	}
	return best, best != ""
}

// LinkTag assigns a catalog model and a library content path to a tag by
// partially updating its state file: only model, source, and the no-cloud
// flag change, every other field is preserved. The write is an atomic
// replace. Returns the resolved source reference.
func (s *StateStore) LinkTag(uid, boxID, model, contentPath string) (string, error) {
	statePath, err := s.locateStateFile(uid, boxID)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(statePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTagFileNotFound, statePath)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("failed to parse tag state file %s: %w", statePath, err)
	}

	source := linkage.FormatSource(contentPath)
	fields["model"] = model
	fields["source"] = source
	fields["nocloud"] = true

	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tag state: %w", err)
	}
	if err := utils.WriteFileAtomic(statePath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write tag state file: %w", err)
	}

	s.logger.Info("Tag linked",
		zap.String("uid", uid),
		zap.String("model", model),
		zap.String("source", source),
	)
	return source, nil
}

// locateStateFile finds the state file whose embedded cloud_ruid ends in
// the given uid, searching every box directory. When no file matches, the
// supplied box id is used verbatim with the uid's directory half.
func (s *StateStore) locateStateFile(uid, boxID string) (string, error) {
	target := strings.ToLower(uid)

	boxDirs, err := os.ReadDir(s.contentPath)
	if err == nil {
		for _, box := range boxDirs {
			if !box.IsDir() {
				continue
			}
			tagDirs, err := os.ReadDir(filepath.Join(s.contentPath, box.Name()))
			if err != nil {
				continue
			}
			for _, tag := range tagDirs {
				if !tag.IsDir() {
					continue
				}
				statePath := filepath.Join(s.contentPath, box.Name(), tag.Name(), stateFileName)
				if matchesRUID(statePath, target) {
					return statePath, nil
				}
			}
		}
	}

	fallback := filepath.Join(s.contentPath, boxID, strings.ToUpper(uid[:8]), stateFileName)
	if _, err := os.Stat(fallback); err != nil {
		return "", fmt.Errorf("%w: uid %s", ErrTagFileNotFound, uid)
	}
	return fallback, nil
}

// matchesRUID reports whether the state file's cloud_ruid trailing 16 hex
// characters equal the target uid, case-insensitively.
func matchesRUID(statePath, target string) bool {
	raw, err := os.ReadFile(statePath)
	if err != nil {
		return false
	}
	var fields struct {
		CloudRUID string `json:"cloud_ruid"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	ruid := strings.ToLower(fields.CloudRUID)
	if len(ruid) < 16 {
		return false
	}
	return ruid[len(ruid)-16:] == target
}
