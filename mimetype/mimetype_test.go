package mimetype

import "testing"

func TestResolve(t *testing.T) {
	testCases := []struct {
		description string
		path        string
		expected    string
	}{
		{
			description: "known image extension",
			path:        "/srv/assets/logo.png",
			expected:    "image/png",
		},
		{
			description: "known document extension",
			path:        "report.pdf",
			expected:    "application/pdf",
		},
		{
			description: "unknown extension",
			path:        "data.qqq",
			expected:    DefaultType,
		},
		{
			description: "no extension at all",
			path:        "Makefile",
			expected:    DefaultType,
		},
		{
			description: "lookup is case-sensitive",
			path:        "photo.PNG",
			expected:    DefaultType,
		},
		{
			description: "only the final extension counts",
			path:        "archive.tar.gz",
			expected:    "application/gzip",
		},
		{
			description: "trailing dot",
			path:        "weird.",
			expected:    DefaultType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual := Resolve(tc.path)
			if actual != tc.expected {
				t.Errorf("wanted %q but got %q", tc.expected, actual)
			}
		})
	}
}
