package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement describes an external tool the pipeline shells out to, such
// as ffmpeg for audio extraction or uvx for whisper.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the PATH lookup result for a single requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries resolves each requirement against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkBinary(req))
	}
	return results
}

func checkBinary(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	switch {
	case status.Command == "":
		status.Detail = "command not configured"
	default:
		if _, err := exec.LookPath(status.Command); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		} else {
			status.Available = true
		}
	}
	return status
}
