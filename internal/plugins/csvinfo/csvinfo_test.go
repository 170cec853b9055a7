package csvinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/fileinfo/internal/fileinfo"
	"github.com/idelchi/fileinfo/internal/plugins/csvinfo"
)

func write(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "header and rows",
			content: "name,age\nann,3\nbob,4\n",
			want:    []string{"Rows 3", "Columns 2"},
		},
		{
			name:    "ragged rows report the widest",
			content: "a\nb,c,d\ne,f\n",
			want:    []string{"Rows 3", "Columns 3"},
		},
		{
			name:    "quoted fields",
			content: "\"x,y\",z\n\"a \"\"b\"\"\",w\n",
			want:    []string{"Rows 2", "Columns 2"},
		},
		{
			name:    "blank line between rows",
			content: "a,b\n\nc\n",
			want:    []string{"Rows 3", "Columns 2"},
		},
		{
			name:    "only a blank line",
			content: "\n",
			want:    []string{"Rows 1", "Columns 0"},
		},
		{
			name:    "trailing blank lines",
			content: "a\n\n\n",
			want:    []string{"Rows 3", "Columns 1"},
		},
		{
			name:    "crlf with blank line",
			content: "a,b\r\n\r\nc,d,e\r\n",
			want:    []string{"Rows 3", "Columns 3"},
		},
		{
			name:    "quoted newline is not a blank row",
			content: "\"multi\n\nline\",x\ny\n",
			want:    []string{"Rows 2", "Columns 2"},
		},
		{
			name:    "no trailing newline",
			content: "1,2,3,4",
			want:    []string{"Rows 1", "Columns 4"},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := csvinfo.Describe(write(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeEmpty(t *testing.T) {
	t.Parallel()

	_, err := csvinfo.Describe(write(t, ""))
	assert.ErrorIs(t, err, csvinfo.ErrEmpty)
}

func TestProviderRegistersCSVPattern(t *testing.T) {
	t.Parallel()

	var set fileinfo.Set

	require.NoError(t, csvinfo.Provider{}.Register(&set))

	regs := set.Registrations()
	require.Len(t, regs, 1)
	assert.Equal(t, []string{csvinfo.Pattern}, regs[0].Patterns)
}
