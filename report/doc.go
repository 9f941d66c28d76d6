// Package report renders machine-readable JSON summaries of container
// build runs: one row per output with sizes and digests, stamped with the
// producing tool name and library version.
package report
