// Package mkboot orchestrates boot.dat container builds. It reads stage-2
// payloads, wraps them via the boot package, and writes the outputs: either
// one payload given directly, or a batch described by a YAML manifest and
// built on a bounded worker pool. Outputs whose content would not change
// are left untouched, and a run can emit .digest sidecar files plus a JSON
// build report.
//
// The main entry point is Run, which accepts a Config struct with all
// parameters for the workflow.
package mkboot
