package logging

import (
	"strings"
)

// FormatSubject builds the run/cue/stage subject string used in console output.
func FormatSubject(runID, cueIndex, stage string) string {
	runID = shortRunID(strings.TrimSpace(runID))
	cueIndex = strings.TrimSpace(cueIndex)
	stage = strings.TrimSpace(stage)
	parts := make([]string, 0, 2)
	if runID != "" {
		parts = append(parts, "Run "+runID)
	}
	switch {
	case cueIndex != "" && stage != "":
		parts = append(parts, "Cue #"+cueIndex+" ("+stage+")")
	case cueIndex != "":
		parts = append(parts, "Cue #"+cueIndex)
	case stage != "":
		parts = append(parts, capitalizeASCII(stage))
	}
	return strings.Join(parts, " · ")
}

// shortRunID keeps the first uuid group so console headers stay narrow.
func shortRunID(id string) string {
	if idx := strings.IndexByte(id, '-'); idx > 0 {
		return id[:idx]
	}
	return id
}
