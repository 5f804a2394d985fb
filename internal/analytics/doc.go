// Package analytics implements the aggregation queries behind each
// dashboard panel: localization ratios and trends, recency splits, country
// sourcing, genre treemaps, and runtime/season distributions.
//
// Every query is a pure function of (table, filter): inputs are never
// mutated, identical calls return identical results, and concurrent callers
// need no coordination. An empty filtered input produces a summary with
// NoData set instead of an error, so the rendering layer can short-circuit.
package analytics
