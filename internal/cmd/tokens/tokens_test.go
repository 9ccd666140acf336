package tokens

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/bbparse/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbparse/internal/config"
	"github.com/open-cli-collective/bbparse/pkg/bbcode"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, v := range config.EnvVars() {
		t.Setenv(v, "")
	}
}

func run(t *testing.T, input, output string) string {
	t.Helper()
	var stdout bytes.Buffer
	opts := &tokensOptions{
		global: cmdutil.GlobalOptions{Output: output, NoColor: true},
		stdin:  strings.NewReader(input),
		stdout: &stdout,
		stderr: &bytes.Buffer{},
	}
	require.NoError(t, runTokens(nil, opts))
	return stdout.String()
}

func TestRunTokens_Plain(t *testing.T) {
	isolate(t)
	got := run(t, "[color=red]x[/color][sic", "plain")

	want := strings.Join([]string{
		"0\topen\tcolor\t\"red\"",
		"11\ttext\t\t\"x\"",
		"12\tclose\tcolor\t",
		"20\ttext\t\t\"[sic\"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRunTokens_JSON(t *testing.T) {
	isolate(t)
	got := run(t, "[b]", "json")

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &rows))
	assert.Equal(t, []map[string]string{{"pos": "0", "type": "open", "tag": "b", "value": ""}}, rows)
}

func TestRunTokens_TableTruncatesLongText(t *testing.T) {
	isolate(t)
	got := run(t, strings.Repeat("a", 100), "table")
	assert.Contains(t, got, strings.Repeat("a", maxValueWidth-3)+"...")
	assert.NotContains(t, got, strings.Repeat("a", maxValueWidth))
}

func TestTokenRow(t *testing.T) {
	tests := []struct {
		name string
		tok  bbcode.Token
		want []string
	}{
		{"text", bbcode.TextToken("hi"), []string{"0", "text", "", `"hi"`}},
		{"open", bbcode.OpeningTag(bbcode.TagBold), []string{"0", "open", "b", ""}},
		{"open with attribute", bbcode.OpeningTagWithAttribute(bbcode.TagSize, "2"), []string{"0", "open", "size", `"2"`}},
		{"close", bbcode.ClosingTag(bbcode.TagQuote), []string{"0", "close", "quote", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenRow(tt.tok, false))
		})
	}
}
