package linkage

// Candidate carries the imperfect keys extracted from a content file or a
// device-reported tag. Absent keys stay at their zero value.
type Candidate struct {
	// Model is the tag's model id, if the device reported one.
	Model string
	// AudioID is the numeric audio id from a content file header.
	AudioID *int64
	// Hash is the content hash from a file header (any case).
	Hash string
	// Source is the tag's raw source reference (lib:// path).
	Source string
}

// MatcherFunc resolves a candidate to a catalog entry, or nil when the
// strategy does not apply. Matchers are pure: they never mutate the
// catalog or the candidate.
type MatcherFunc func(Candidate) *Entry

// FirstMatch evaluates matchers in priority order and returns the first
// non-nil result. The uniform order across the engine is:
// model > audio id > hash > source > none.
func FirstMatch(c Candidate, matchers ...MatcherFunc) *Entry {
	for _, m := range matchers {
		if e := m(c); e != nil {
			return e
		}
	}
	return nil
}

// MatchModel matches by exact model id.
func (ix *Index) MatchModel(c Candidate) *Entry {
	return ix.LookupModel(c.Model)
}

// MatchAudioID matches by exact numeric audio id.
func (ix *Index) MatchAudioID(c Candidate) *Entry {
	if c.AudioID == nil {
		return nil
	}
	return ix.LookupAudioID(*c.AudioID)
}

// MatchHash matches by content hash, case-insensitively.
func (ix *Index) MatchHash(c Candidate) *Entry {
	return ix.LookupHash(c.Hash)
}

// SourceMatcher returns a matcher over a prebuilt source-key map
// (lib:// path -> entry). The map is produced by cross-matching content
// files against the catalog, which lets tags that only carry a raw source
// path still resolve.
func SourceMatcher(bySource map[string]*Entry) MatcherFunc {
	return func(c Candidate) *Entry {
		if c.Source == "" {
			return nil
		}
		return bySource[c.Source]
	}
}
