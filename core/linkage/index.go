package linkage

import (
	"strings"

	"go.uber.org/zap"
)

// Index provides O(1) catalog lookups by model id, numeric audio id, and
// lowercased content hash.
//
// Build order matters: callers pass custom entries before official ones,
// and a later entry never overwrites a key an earlier entry already owns.
// Building the index never mutates the entries.
type Index struct {
	byModel   map[string]*Entry
	byAudioID map[int64]*Entry
	byHash    map[string]*Entry
}

// BuildIndex constructs the lookup maps over the given entries. Non-numeric
// audio id tokens are skipped with a debug log; they are data quality noise,
// not an error.
func BuildIndex(entries []Entry, logger *zap.Logger) *Index {
	ix := &Index{
		byModel:   make(map[string]*Entry, len(entries)),
		byAudioID: make(map[int64]*Entry),
		byHash:    make(map[string]*Entry),
	}

	for i := range entries {
		e := &entries[i]

		if e.Model != "" {
			if _, taken := ix.byModel[e.Model]; !taken {
				ix.byModel[e.Model] = e
			}
		}

		for _, token := range e.AudioIDs {
			id, ok := ParseAudioID(token)
			if !ok {
				logger.Debug("Skipping non-numeric audio id",
					zap.String("model", e.Model),
					zap.String("audio_id", token),
				)
				continue
			}
			if _, taken := ix.byAudioID[id]; !taken {
				ix.byAudioID[id] = e
			}
		}

		for _, h := range e.Hashes {
			key := strings.ToLower(h)
			if key == "" {
				continue
			}
			if _, taken := ix.byHash[key]; !taken {
				ix.byHash[key] = e
			}
		}
	}

	return ix
}

// LookupModel returns the entry owning the given model id.
func (ix *Index) LookupModel(model string) *Entry {
	if model == "" {
		return nil
	}
	return ix.byModel[model]
}

// LookupAudioID returns the entry owning the given numeric audio id.
func (ix *Index) LookupAudioID(id int64) *Entry {
	return ix.byAudioID[id]
}

// LookupHash returns the entry owning the given content hash,
// case-insensitively.
func (ix *Index) LookupHash(hash string) *Entry {
	if hash == "" {
		return nil
	}
	return ix.byHash[strings.ToLower(hash)]
}

// Len reports the number of distinct model keys, mostly for logging.
func (ix *Index) Len() int {
	return len(ix.byModel)
}
