// Package pipeline orchestrates the FatigueSet preprocessing run across the
// static catalog of 18 band/intensity groups. Groups are processed strictly
// one at a time in catalog order; every failure mode is recorded as a typed
// skip reason and never aborts the run.
package pipeline
