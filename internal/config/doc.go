// Package config provides the application configuration for the FatigueSet
// preprocessing pipeline.
//
// Configuration is layered: built-in defaults, then an optional config.yaml,
// then environment variables with the EEGPREP prefix. The defaults are chosen
// so that running the binary with no configuration at all behaves like the
// original pipeline: trials are read from data/fatigueset and the 3D arrays
// are written to processed_data.
//
// Example config.yaml:
//
//	paths:
//	  data_dir: data/fatigueset
//	  output_dir: processed_data
//	logging:
//	  level: info
//	  format: text
//	  output: console
//
// Environment overrides follow the nesting, e.g. EEGPREP_PATHS_DATA_DIR or
// EEGPREP_LOGGING_LEVEL.
package config
