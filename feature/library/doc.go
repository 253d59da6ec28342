// Package library discovers audio content files and joins them to catalog
// entries (the content-centric linkage view).
//
// Discovery tries the mounted library volume first and falls back to a
// recursive device file-index walk only when the local volume is empty.
// Header enrichment then fetches one directory listing per distinct parent
// directory, concurrently, tolerating any subset of fetches failing; files
// without headers stay listed but cannot match by audio id or hash.
//
// Matching priority is audio id, then content hash, else orphaned.
package library
