package ioenrich

import (
	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar of enriched species.
func newProgressBar(total int) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", "Species: ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
