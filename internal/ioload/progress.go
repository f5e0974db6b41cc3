package ioload

import (
	"github.com/cheggaaa/pb/v3"
)

// minProgressRows is the smallest number of taxa that gets a progress bar.
const minProgressRows = 100_000

// newProgressBar creates a record-counting progress bar with consistent
// settings.
func newProgressBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
