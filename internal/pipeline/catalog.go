package pipeline

import "strings"

// Bands are the EEG frequency decompositions present in the FatigueSet
// distribution. Raw is the unfiltered signal.
var Bands = []string{
	"Raw EEG",
	"Alpha EEG",
	"Beta EEG",
	"Gamma EEG",
	"Delta EEG",
	"Theta EEG",
}

// Intensities are the fatigue-level labels of a recording session
var Intensities = []string{
	"Low Intensity",
	"Medium Intensity",
	"High Intensity",
}

// Group identifies one band/intensity pair. Each group owns one source
// directory and one output artifact.
type Group struct {
	Band      string
	Intensity string
}

// String returns a human-readable group label for logs
func (g Group) String() string {
	return g.Band + " / " + g.Intensity
}

// OutputName derives the artifact filename from the band and intensity
// abbreviations, e.g. "Raw EEG" + "Low Intensity" → array_3D_raw_low.npy
func (g Group) OutputName() string {
	return "array_3D_" + abbr(g.Band) + "_" + abbr(g.Intensity) + ".npy"
}

// abbr lower-cases a name and keeps only its first word
func abbr(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Catalog returns the static catalog of all 18 band/intensity groups in
// processing order (band-major, matching the original pipeline)
func Catalog() []Group {
	groups := make([]Group, 0, len(Bands)*len(Intensities))
	for _, band := range Bands {
		for _, intensity := range Intensities {
			groups = append(groups, Group{Band: band, Intensity: intensity})
		}
	}
	return groups
}
