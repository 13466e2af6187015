package tools

import (
	"strings"

	"github.com/tidwall/gjson"
)

// sentinelStatuses are the structured statuses a model may emit as a leading
// JSON object to ask for more input instead of answering.
var sentinelStatuses = map[string]struct{}{
	StatusFilesRequired:     {},
	StatusTestSampleNeeded:  {},
	StatusMoreStepsRequired: {},
}

// detectSentinel reports whether the response is a recognized status block.
// Only whole-body JSON objects count; prose mentioning a status does not.
func detectSentinel(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return "", false
	}

	status := gjson.Get(trimmed, "status").String()
	if _, ok := sentinelStatuses[status]; !ok {
		return "", false
	}

	return status, true
}
