package sources

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const site = "https://techcorp.example"

func TestExtractCandidates_HeadingsBeforeBlocks(t *testing.T) {
	html := `<html><body>
		<div class="news-item">Quarterly results beat every analyst estimate</div>
		<h2>TechCorp launches new pricing plans for teams</h2>
	</body></html>`

	got, err := ExtractCandidates([]byte(html), site)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "TechCorp launches new pricing plans for teams", got[0].Title)
	assert.Equal(t, "Quarterly results beat every analyst estimate", got[1].Title)
	assert.Equal(t, site, got[0].URL)
	assert.Equal(t, site, got[1].URL)
}

func TestExtractCandidates_DropsShortTexts(t *testing.T) {
	html := `<html><body>
		<h1>Welcome</h1>
		<h2>exactly twenty chars</h2>
		<h2>twenty-one characters</h2>
	</body></html>`

	got, err := ExtractCandidates([]byte(html), site)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "twenty-one characters", got[0].Title)
}

func TestExtractCandidates_IgnoresScriptStyleAndNoscript(t *testing.T) {
	html := `<html><head><style>h2 { color: red; }</style></head><body>
		<h2>Visible heading <script>var hidden = "script text";</script>text here</h2>
		<noscript><h3>Please enable javascript to continue</h3></noscript>
	</body></html>`

	got, err := ExtractCandidates([]byte(html), site)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Visible heading text here", got[0].Title)
}

func TestExtractCandidates_CollapsesWhitespace(t *testing.T) {
	html := "<h3>  Major   release\n\tof   the   platform  </h3>"

	got, err := ExtractCandidates([]byte(html), site)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Major release of the platform", got[0].Title)
}

func TestExtractCandidates_BlockClassMatchIsCaseInsensitive(t *testing.T) {
	html := `<html><body>
		<article class="BlogPost">A long enough article body for extraction</article>
		<div class="Latest-UPDATES">Another long enough block of update text</div>
		<div class="footer">This footer text is long but has no matching class</div>
		<div>Unclassed div text that is also long enough</div>
	</body></html>`

	got, err := ExtractCandidates([]byte(html), site)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A long enough article body for extraction", got[0].Title)
	assert.Equal(t, "Another long enough block of update text", got[1].Title)
}

func TestExtractCandidates_AtMostFive(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "<h2>Heading number %d with enough text</h2>", i)
	}

	got, err := ExtractCandidates([]byte(b.String()), site)

	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Heading number 0 with enough text", got[0].Title)
	assert.Equal(t, "Heading number 4 with enough text", got[4].Title)
}

func TestExtractCandidates_OnlyFirstTenHeadingsConsidered(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("<h2>short</h2>")
	}
	b.WriteString("<h2>The eleventh heading is long enough</h2>")

	got, err := ExtractCandidates([]byte(b.String()), site)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractCandidates_TruncatesTitleAndContent(t *testing.T) {
	long := strings.Repeat("é", 1500)
	html := fmt.Sprintf(`<div class="post">%s</div>`, long)

	got, err := ExtractCandidates([]byte(html), site)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 200, len([]rune(got[0].Title)))
	assert.Equal(t, 1000, len([]rune(got[0].Content)))
}

func TestExtractCandidates_EmptyPage(t *testing.T) {
	got, err := ExtractCandidates([]byte(""), site)

	require.NoError(t, err)
	assert.Empty(t, got)
}
