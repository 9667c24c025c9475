// Package subtitle turns SRT subtitle content into continuous prose.
//
// ParseCues extracts the well-formed cue blocks of a file and Deduplicate
// collapses the overlapping text that rollup caption renderers repeat from
// one cue to the next.
package subtitle
