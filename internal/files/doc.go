// Package files provides filesystem discovery for trial recordings.
//
// A group's source directory holds one tabular file per trial. Discovery
// filters directory entries down to the accepted trial formats and returns
// them in lexicographic name order, which fixes the trial-axis ordering of
// the stacked arrays produced downstream.
package files
