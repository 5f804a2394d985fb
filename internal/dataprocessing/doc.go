// Package dataprocessing ingests heterogeneous streaming-catalog exports and
// normalizes them into the canonical domain.Title schema.
//
// Each platform ships its catalog with its own column names, country-list
// encoding, and duration format. A per-source adapter (see sources.go)
// declares how to reconcile a file into the canonical shape; the loader then
// merges every readable source into one unified table. Unreadable files and
// schema mismatches degrade to warnings with an empty contribution, never to
// a failure propagated into the caller.
package dataprocessing
