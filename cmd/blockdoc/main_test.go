package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
	rootCmd.AddCommand(parseCmd, fmtCmd, checkCmd)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

const goodArticle = `Opening paragraph.

:::image
src: /harbour.jpg
alt: Boats in the harbour
width: 1600
height: 900
caption: Morning
credit: Staff
:::

Closing paragraph.
`

func TestCheck(t *testing.T) {
	out, err := run(t, goodArticle, "check", "--policy", "strict", "-")
	require.NoError(t, err, out)
	assert.Contains(t, out, "<stdin>: 3 blocks, structured format, policy strict")
	assert.Contains(t, out, "ok 0 warning(s)")

	startsWithImage := ":::image\nsrc: /a.jpg\nalt: A\nwidth: 10\nheight: 10\n:::\n\nText after.\n"
	out, err = run(t, startsWithImage, "check", "--policy", "strict", "-")
	assert.ErrorIs(t, err, errIssuesFound)
	assert.Contains(t, out, "article_starts_with_media")

	out, err = run(t, startsWithImage, "check", "--policy", "counts_only", "-")
	require.NoError(t, err, out)
}

func TestCheck_UnknownPolicy(t *testing.T) {
	_, err := run(t, goodArticle, "check", "--policy", "lenient", "-")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errIssuesFound)
}

func TestParse(t *testing.T) {
	out, err := run(t, "Hello\n\n## World\n", "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"isLegacy": true`)
	assert.Contains(t, out, `"type": "subheading"`)

	_, err = run(t, ":::image\nsrc: /a.jpg\n", "parse", "-")
	assert.ErrorIs(t, err, errIssuesFound)
}

func TestFmt(t *testing.T) {
	out, err := run(t, "Hello\n\n\n\n> Short quote\n", "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\n> Short quote\n", out)

	path := filepath.Join(t.TempDir(), "article.md")
	require.NoError(t, os.WriteFile(path, []byte("First\n\n\nSecond"), 0o644))

	out, err = run(t, "", "fmt", "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "reformatted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "First\n\nSecond\n", string(data))

	_, err = run(t, ":::video\nprovider: youtube\n", "fmt", "--write=false", "-")
	assert.ErrorIs(t, err, errIssuesFound)
}
