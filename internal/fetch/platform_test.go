package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123", PlatformAshby},
		{"https://example.com/careers/123", PlatformUnknown},
		{"https://notgreenhouse.io.example.com/jobs", PlatformUnknown},
		{"://broken", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestSelectorsFor(t *testing.T) {
	content, noise := selectorsFor(PlatformGreenhouse)
	assert.Equal(t, ".job__description.body", content[0])
	assert.Contains(t, content, "main", "generic selectors follow the platform ones")
	assert.Contains(t, noise, "form")
	assert.Contains(t, noise, ".post-apply")

	content, noise = selectorsFor(PlatformUnknown)
	assert.Equal(t, genericContentSelectors, content)
	assert.Equal(t, commonNoiseSelectors, noise)

	// Returned slices are copies.
	content[0] = "changed"
	noise[0] = "changed"
	assert.Equal(t, ".job-description", genericContentSelectors[0])
	assert.Equal(t, "form", commonNoiseSelectors[0])
}
