package teddycloud

// TAFHeader is the pre-extracted technical header of an audio content
// file, as reported by the device's file index. The service never parses
// the audio binary format itself.
type TAFHeader struct {
	// AudioID is the unique audio identifier embedded in the file.
	AudioID int64 `json:"audioId"`
	// SHA1Hash is the content hash, hex encoded.
	SHA1Hash string `json:"sha1Hash"`
	// TrackSeconds holds the per-track durations in seconds.
	TrackSeconds []int `json:"trackSeconds"`
}

// File is one entry of a directory listing. Header is present only when
// the device extracted a TAF header for the file.
type File struct {
	Name   string     `json:"name"`
	Size   int64      `json:"size"`
	IsDir  bool       `json:"isDir"`
	Header *TAFHeader `json:"tafHeader,omitempty"`
}

// Directory is a subdirectory entry of a listing.
type Directory struct {
	Name string `json:"name"`
}

// FileIndex is the response of the library file listing. Extra upstream
// fields are dropped at this boundary.
type FileIndex struct {
	Files       []File      `json:"files"`
	Directories []Directory `json:"directories"`
}

// TonieInfo is the device's descriptive view of a tag's content. It may
// be stale; the reconciliation engine prefers its own catalog match.
type TonieInfo struct {
	Model   string `json:"model"`
	Series  string `json:"series"`
	Episode string `json:"episode"`
	Picture string `json:"picture"`
}

// Tag is one device-reported tag from the box tag index.
type Tag struct {
	// RUID is the tag uid as reported by the device.
	RUID string `json:"ruid"`
	// Source is the raw content source reference (lib:// path), if any.
	Source string `json:"source"`
	// NoCloud indicates the tag is served locally only.
	NoCloud bool `json:"nocloud"`
	// TonieInfo carries the device's descriptive metadata.
	TonieInfo TonieInfo `json:"tonieInfo"`
}

type tagIndexResponse struct {
	Tags []Tag `json:"tags"`
}
