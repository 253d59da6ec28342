package linkage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry categories. Custom entries are user-created and take precedence
// over the vendor-provided official database when both claim a key.
const (
	CategoryCustom   = "custom"
	CategoryOfficial = "official"
)

// CustomModelPrefix marks user-assigned model numbers ("900001" and up).
const CustomModelPrefix = "9000"

// SourceScheme is the URI scheme the box uses for library-backed content.
const SourceScheme = "lib://"

// FormatSource builds a library source reference from a path relative to
// the library root (e.g. "Folder/file.taf" -> "lib://Folder/file.taf").
func FormatSource(path string) string {
	return SourceScheme + strings.TrimPrefix(path, "/")
}

// Status is the derived configuration state of a physical tag. It is never
// stored; it is always recomputable from (model, source).
type Status string

const (
	// StatusUnconfigured: the tag carries no model id yet.
	StatusUnconfigured Status = "unconfigured"
	// StatusUnassigned: a model id exists but no content source.
	StatusUnassigned Status = "unassigned"
	// StatusAssigned: both model id and content source are present.
	StatusAssigned Status = "assigned"
)

// DeriveStatus computes the tag status from the raw (model, source) pair.
func DeriveStatus(model, source string) Status {
	switch {
	case model == "":
		return StatusUnconfigured
	case source == "":
		return StatusUnassigned
	default:
		return StatusAssigned
	}
}

// Entry is one logical content record from the catalog
// (tonies.custom.json or the official tonies.json).
//
// The upstream files are loosely typed: audio_id and hash appear as
// scalars or arrays, as strings or numbers, depending on the producer.
// FlexStrings and FlexString absorb that at the ingestion boundary so the
// rest of the engine only sees normalized values. Unknown upstream fields
// are dropped, not propagated.
type Entry struct {
	No       FlexString  `json:"no"`
	Model    string      `json:"model"`
	AudioIDs FlexStrings `json:"audio_id"`
	Hashes   FlexStrings `json:"hash"`
	Title    string      `json:"title"`
	Series   string      `json:"series"`
	Episodes string      `json:"episodes"`
	Tracks   []string    `json:"tracks"`
	Release  FlexString  `json:"release"`
	Language string      `json:"language"`
	Category string      `json:"category"`
	Pic      string      `json:"pic"`
}

// IsCustom reports whether the entry belongs to the user catalog, either
// by explicit category or by the reserved custom model prefix.
func (e *Entry) IsCustom() bool {
	if e.Category == CategoryCustom {
		return true
	}
	return strings.HasPrefix(e.Model, CustomModelPrefix)
}

// DisplayName returns the name used for presentation and sorting.
func (e *Entry) DisplayName() string {
	if e.Series != "" {
		return e.Series
	}
	return e.Title
}

// FlexString is a string that also accepts a JSON number or boolean.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	// Number or bool: keep the raw token.
	*s = FlexString(trimmed)
	return nil
}

func (s FlexString) String() string { return string(s) }

// FlexStrings is a list of strings that also accepts a single scalar, a
// list of numbers, or null. It always marshals as a string array, which
// normalizes the custom catalog file on save.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			s, err := scalarToString(item)
			if err != nil {
				return err
			}
			if s != "" {
				out = append(out, s)
			}
		}
		*f = out
		return nil
	}
	s, err := scalarToString(data)
	if err != nil {
		return err
	}
	if s == "" {
		*f = nil
		return nil
	}
	*f = []string{s}
	return nil
}

func (f FlexStrings) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

func scalarToString(data json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	// Numbers come through verbatim; reject nested structures.
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "", fmt.Errorf("expected scalar, got %s", trimmed)
	}
	return trimmed, nil
}

// ParseAudioID normalizes an audio id token to its numeric form.
// Upstream data mixes string and numeric representations.
func ParseAudioID(token string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
