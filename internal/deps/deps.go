// Package deps checks the availability of the external binaries clipbatch
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"clipbatch/internal/config"
)

// Requirement defines an external dependency of the pipeline.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements derives the dependency list from the tool configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "ffmpeg", Command: cfg.Encoder.FFmpegBinary, Description: "external encoder: trim encodes and snapshots"},
		{Name: "ffprobe", Command: cfg.Encoder.FFprobeBinary, Description: "external encoder: source format probe"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
