package dom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>job</title></head>
<body>
<p>Last run: <time id="timestamp" datetime="2024-04-10T00:35:11Z">loading&hellip;</time></p>
<span id="empty" datetime="">x</span>
<span id="noattr">y</span>
<span id="dup" datetime="first"></span><span id="dup" datetime="second"></span>
</body></html>`

func parse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestElementByID(t *testing.T) {
	doc := parse(t, page)

	el, ok := doc.ElementByID("timestamp")
	require.True(t, ok)
	assert.Equal(t, "loading…", el.TextContent())

	_, ok = doc.ElementByID("missing")
	assert.False(t, ok)

	// first match in document order wins
	el, ok = doc.ElementByID("dup")
	require.True(t, ok)
	v, _ := el.Attribute("datetime")
	assert.Equal(t, "first", v)
}

func TestAttribute(t *testing.T) {
	doc := parse(t, page)

	cases := []struct {
		id      string
		wantVal string
		wantOK  bool
	}{
		{"timestamp", "2024-04-10T00:35:11Z", true},
		{"empty", "", true},
		{"noattr", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			el, ok := doc.ElementByID(tc.id)
			require.True(t, ok)
			v, ok := el.Attribute("datetime")
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantVal, v)
		})
	}
}

func TestSetTextContent(t *testing.T) {
	doc := parse(t, `<p id="x">old <b>bold</b> text</p>`)
	el, ok := doc.ElementByID("x")
	require.True(t, ok)

	el.SetTextContent("5 <minutes> ago")
	assert.Equal(t, "5 <minutes> ago", el.TextContent())

	var b bytes.Buffer
	require.NoError(t, doc.Render(&b))
	want := `<html><head></head><body><p id="x">5 &lt;minutes&gt; ago</p></body></html>`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("rendered document mismatch (-want +got):\n%s", diff)
	}

	el.SetTextContent("")
	assert.Equal(t, "", el.TextContent())
}

func TestDo(t *testing.T) {
	doc := parse(t, page)
	var got string
	doc.Do(func() {
		el, ok := doc.ElementByID("timestamp")
		require.True(t, ok)
		el.SetTextContent("1 days ago")
		got = el.TextContent()
	})
	assert.Equal(t, "1 days ago", got)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o640))

	doc := parse(t, page)
	el, _ := doc.ElementByID("timestamp")
	el.SetTextContent("2 hours ago")
	require.NoError(t, doc.WriteFile(path))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<time id="timestamp" datetime="2024-04-10T00:35:11Z">2 hours ago</time>`)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}
