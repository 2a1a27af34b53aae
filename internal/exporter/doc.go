// Package exporter persists stacked dataset blocks as NumPy .npy files so
// the downstream model code can np.load them directly. Only the subset of
// the format the pipeline produces is implemented: version 1.0 headers,
// little-endian float64, C-ordered rank-3 arrays.
package exporter
