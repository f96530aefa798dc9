// Package build packages a LÖVE project into a .love archive and fuses it
// with cached runtimes into Windows and macOS distributables.
package build

import (
	"time"

	"github.com/boonbuild/boon/internal/output"
)

// Statistics describes one produced artifact.
type Statistics struct {
	// Name is the display name of the build, e.g. "Windows x64".
	Name string

	// FileName is the artifact's file name inside the output directory.
	FileName string

	// Time is the elapsed wall time of the step.
	Time time.Duration

	// Size is the artifact size in bytes. For bundles it is the sum of all
	// regular files in the bundle.
	Size int64
}

// GetName implements output.StatisticsInfo.
func (s Statistics) GetName() string { return s.Name }

// GetFileName implements output.StatisticsInfo.
func (s Statistics) GetFileName() string { return s.FileName }

// GetDuration implements output.StatisticsInfo.
func (s Statistics) GetDuration() time.Duration { return s.Time }

// GetSize implements output.StatisticsInfo.
func (s Statistics) GetSize() int64 { return s.Size }

// Result is the outcome of a pipeline run.
type Result struct {
	// OutputDir is the absolute directory every artifact was written to.
	OutputDir string

	// Stats holds the archive statistics first, then one entry per fused
	// target in target order.
	Stats []Statistics
}

// Infos returns the statistics as report rows.
func (r *Result) Infos() []output.StatisticsInfo {
	infos := make([]output.StatisticsInfo, len(r.Stats))
	for i, s := range r.Stats {
		infos[i] = s
	}
	return infos
}
