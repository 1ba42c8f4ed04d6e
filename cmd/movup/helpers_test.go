package main_test

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

const samplePayload = `{
	"status": "success",
	"analysis": [
		{"frame": 10, "issue_type": "posture", "time_seconds": 0.4, "severity_score": 0.3},
		{"frame": 12, "issue_type": "posture", "time_seconds": 0.6, "severity_score": 0.85,
		 "description": "forward lean", "image_path": "frames/12.jpg"},
		{"frame": 12, "issue_type": "overstride", "time_seconds": 0.6},
		{"frame": 40, "issue_type": "visibility", "time_seconds": 1.6}
	],
	"summary": {"fps": 25, "total_frames": 200, "overstride_issues_count": 3}
}`

const legacyPayload = `{"posturas_erradas": [{"frame": 3, "second": 0.1}], "total_frames": 50}`

// savePayload writes content into the test temp dir and records its path (and a sibling database path)
// as labels.
func savePayload(data test.Data, content string) {
	path := data.Temp().Save(content, "payload.json")

	data.Labels().Set("payload", path)
	data.Labels().Set("store", filepath.Join(filepath.Dir(path), "movup.db"))
}

// expectContains returns a comparator verifying the output contains every substring.
func expectContains(substrs ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		for _, substr := range substrs {
			if !strings.Contains(stdout, substr) {
				testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
				testing.Fail()
			}
		}
	}
}

// expectNotContains returns a comparator verifying the output does not contain a substring.
func expectNotContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("unexpected substring %q found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}
