// Package ffprobe inspects recorded videos before they are sent for analysis.
package ffprobe

import "time"

const (
	name = "ffprobe"
	// Phone recordings copied from slow storage can take a while to open.
	timeout = 30 * time.Second
)
