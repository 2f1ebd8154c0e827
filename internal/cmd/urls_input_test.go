package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveURLsFromPositional(t *testing.T) {
	urls, err := resolveURLs([]string{
		"https://api.example.com/v1/items",
		"  http://other.example.com/  ",
	}, "")
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://api.example.com/v1/items",
		"http://other.example.com/",
	}, urls)
}

func TestResolveURLsRejectsMixedSources(t *testing.T) {
	_, err := resolveURLs([]string{"https://example.com"}, "urls.txt")
	require.Error(t, err)
}

func TestResolveURLsRejectsBadSchemes(t *testing.T) {
	_, err := resolveURLs([]string{"ftp://example.com/file"}, "")
	require.Error(t, err)

	_, err = resolveURLs([]string{"https:///no-host"}, "")
	require.Error(t, err)
}

func TestReadURLsFileSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# item endpoints\nhttps://api.example.com/v1/items\n\n  https://api.example.com/v1/users  \n# done\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	urls, err := readURLsFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://api.example.com/v1/items",
		"https://api.example.com/v1/users",
	}, urls)
}

func TestReadURLsFileRejectsInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://ok.example.com\nnot a url\n"), 0644))

	_, err := readURLsFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestReadURLsFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\n"), 0644))

	_, err := readURLsFile(path)
	require.Error(t, err)
}
