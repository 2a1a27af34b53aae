// Package dataprocessing implements the core transform of the FatigueSet
// preprocessing pipeline: loading per-trial tabular recordings into numeric
// matrices, equalizing their lengths by zero-padding, and stacking them into
// a single 3D block per group.
//
// # Components
//
// 1. Loader: reads one trial file (CSV or XLSX) into a timepoints x channels
// matrix, discarding a leftover index column when present
//
// 2. Scanner: finds the maximum timepoint count across a group directory,
// which becomes the padding target
//
// 3. Padder/Stacker: extends each table with trailing zero rows up to the
// target and stacks the padded tables into a trials x timepoints x channels
// Block
//
// # Data Flow
//
//	Trial file → LoadTrialFile → *mat.Dense → PadRows → Stack → Block
//
// All transforms are pure: no entity is mutated after creation, and tables
// shorter than the target are never truncated. Every failure is local — a
// file that cannot be loaded is skipped by the caller, never fatal.
package dataprocessing
