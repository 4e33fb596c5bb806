package file_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/maxicode2/surrealdb/iam/file"
)

func TestExtractAllowedPaths(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single path", "/etc/data", []string{"/etc/data"}},
		{"multiple paths", "/etc/data,/var/files", []string{"/etc/data", "/var/files"}},
		{"whitespace trimmed", " /etc/data , /var/files ", []string{"/etc/data", "/var/files"}},
		{"empty segments skipped", ",,/etc/data,,", []string{"/etc/data"}},
		{"relative segments dropped", "data,./data,/etc/data", []string{"/etc/data"}},
		{"paths cleaned", "/etc//data/../files", []string{"/etc/files"}},
		{"only malformed", "a,b, ,", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := file.ExtractAllowedPaths(test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected paths (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsPathAllowed(t *testing.T) {
	allowed := file.ExtractAllowedPaths("/etc/data,/var/files")

	require.True(t, file.IsPathAllowed("/etc/data", allowed))
	require.True(t, file.IsPathAllowed("/etc/data/sub/file.txt", allowed))
	require.True(t, file.IsPathAllowed("/var/files/x", allowed))
	require.False(t, file.IsPathAllowed("/etc/datafiles", allowed))
	require.False(t, file.IsPathAllowed("/etc", allowed))
	require.False(t, file.IsPathAllowed("/tmp/other", allowed))

	require.False(t, file.IsPathAllowed("/anything", nil))
}
