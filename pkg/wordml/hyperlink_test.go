package wordml

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestBuildHyperlinkInstruction(t *testing.T) {
	assert.Equal(t,
		`HYPERLINK "https://x.test/p" \* MERGEFORMAT`,
		BuildHyperlinkInstruction("https://x.test/p", ""))
	assert.Equal(t,
		`HYPERLINK "https://x.test/p" \o "tip" \* MERGEFORMAT`,
		BuildHyperlinkInstruction("https://x.test/p", "tip"))
}

func TestParseHyperlinkInstruction(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		want        Hyperlink
	}{
		{
			name:        "plain target",
			instruction: `HYPERLINK "https://x.test/p"`,
			want:        Hyperlink{URL: "https://x.test/p"},
		},
		{
			name:        "target with tooltip",
			instruction: `HYPERLINK "https://x.test/p" \o "tip" \* MERGEFORMAT`,
			want:        Hyperlink{URL: "https://x.test/p", Tooltip: "tip"},
		},
		{
			name:        "target plus anchor",
			instruction: `HYPERLINK "https://x.test/p" \l "sec2"`,
			want:        Hyperlink{URL: "https://x.test/p#sec2", Anchor: "sec2"},
		},
		{
			name:        "anchor only",
			instruction: `HYPERLINK \l "bookmark1"`,
			want:        Hyperlink{URL: "#bookmark1", Anchor: "bookmark1"},
		},
		{
			name:        "unquoted anchor argument",
			instruction: `HYPERLINK \l bookmark1`,
			want:        Hyperlink{URL: "#bookmark1", Anchor: "bookmark1"},
		},
		{
			name:        "case insensitive keyword",
			instruction: `hyperlink "https://x.test"`,
			want:        Hyperlink{URL: "https://x.test"},
		},
		{
			name:        "surrounding whitespace",
			instruction: `  HYPERLINK "https://x.test"  `,
			want:        Hyperlink{URL: "https://x.test"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHyperlinkInstruction(tt.instruction)
			require.True(t, ok)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseHyperlinkInstructionBareBackslashTail(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		wantURL     string
	}{
		{"lone backslash", `HYPERLINK \`, ""},
		{"backslash after target", `HYPERLINK "https://x.test" \`, "https://x.test"},
		{"backslash after switch", `HYPERLINK \l "a" \`, "#a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := ParseHyperlinkInstruction(tt.instruction)
			require.True(t, ok)
			assert.Equal(t, tt.wantURL, link.URL)
		})
	}
}

func TestParseHyperlinkInstructionRejectsOtherFields(t *testing.T) {
	for _, instr := range []string{` PAGE `, `REF _h1 \h`, ""} {
		_, ok := ParseHyperlinkInstruction(instr)
		assert.False(t, ok, "instruction %q", instr)
	}
}

func TestHyperlinkSpanXML(t *testing.T) {
	span := &HyperlinkSpan{
		RelID:   "rId4",
		Tooltip: "Open docs",
		Runs:    []*Run{NewRun("docs").SetUnderline("single")},
	}
	el := span.XML()

	assert.Equal(t, "w:hyperlink", el.Name)
	id, _ := el.Attr("r:id")
	assert.Equal(t, "rId4", id)
	tip, _ := el.Attr("w:tooltip")
	assert.Equal(t, "Open docs", tip)
	hist, _ := el.Attr("w:history")
	assert.Equal(t, "1", hist)

	require.Len(t, el.Children, 1)
	assert.Equal(t, "w:r", el.Children[0].Name)
}

func TestHyperlinkSpanAnchorTarget(t *testing.T) {
	span := &HyperlinkSpan{Anchor: "_Toc42", Runs: []*Run{NewRun("§2")}}
	el := span.XML()

	anchor, ok := el.Attr("w:anchor")
	require.True(t, ok)
	assert.Equal(t, "_Toc42", anchor)
	_, hasID := el.Attr("r:id")
	assert.False(t, hasID)
}
