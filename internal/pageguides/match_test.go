package pageguides

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/activity/detail/:id", "/activity/detail/15", true},
		{"/activity/detail/:id", "/activity/detail/15/edit", false},
		{"/activity/detail/:id", "/activity/detail/", false},
		{"/classes/:classId/students/:id", "/classes/3/students/9", true},
		{"/reports/*", "/reports/2025/march", true},
		{"/reports/*", "/report", false},
		{"/marketing/channels", "/marketing/channels", true},
		{"/marketing/channels", "/marketing/channels/1", false},
		{"/files/v1.0/:name", "/files/v1x0/a", false},
		{"/files/v1.0/:name", "/files/v1.0/a", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPath(tt.pattern, tt.path))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/marketing/channels", normalizePath("marketing/channels/"))
	assert.Equal(t, "/", normalizePath("/"))
	assert.Equal(t, "/", normalizePath("///"))
	assert.Equal(t, "", normalizePath("  "))
}
