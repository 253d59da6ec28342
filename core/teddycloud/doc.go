// Package teddycloud is the typed client for the TeddyCloud device API.
//
// The upstream API returns loosely shaped JSON; this package converts it
// to typed records with explicit optional fields at the ingestion boundary
// and drops unknown fields. Callers treat individual request failures as
// transient upstream conditions: an enrichment fetch that fails degrades
// the affected piece instead of aborting the overall operation.
package teddycloud
