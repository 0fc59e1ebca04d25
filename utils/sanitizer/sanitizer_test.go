package sanitizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-browser/domain"
)

func payloadOf(t *testing.T, items ...string) *domain.RawCatalogPayload {
	t.Helper()
	p := &domain.RawCatalogPayload{Info: []byte(`{"results": 42}`)}
	for _, it := range items {
		require.True(t, json.Valid([]byte(it)), it)
		p.Plugins = append(p.Plugins, []byte(it))
	}
	return p
}

func TestSanitizePayload_DecodesEntitiesInName(t *testing.T) {
	resp := SanitizePayload(payloadOf(t, `{"slug":"cafe","name":"Caf&eacute; Plugin"}`))

	require.Len(t, resp.Plugins, 1)
	assert.Equal(t, "Café Plugin", resp.Plugins[0].Name)
	assert.Equal(t, 42, resp.Info.Results)
}

func TestSanitizePayload_DoubleEncodedAndMarkup(t *testing.T) {
	resp := SanitizePayload(payloadOf(t, `{
		"slug": "forms",
		"name": "Forms &amp;amp; Surveys",
		"short_description": "<p>Build <strong>forms</strong><script>alert(1)</script>\n\n fast</p>",
		"author": "&lt;a href=&quot;https://example.com&quot;&gt;Jane&lt;/a&gt;"
	}`))

	item := resp.Plugins[0]
	assert.Equal(t, "Forms & Surveys", item.Name)
	assert.Equal(t, "Build forms fast", item.ShortDescription)
	assert.Equal(t, "Jane", item.Author)
}

func TestSanitizePayload_NumericDefaultsAndClamping(t *testing.T) {
	resp := SanitizePayload(payloadOf(t,
		`{"slug":"a","rating":"n/a","num_ratings":null,"active_installs":"1,000"}`,
		`{"slug":"b","rating":140,"num_ratings":"12","active_installs":-5,"downloaded":"9876"}`,
		`{"slug":"c","rating":-3,"downloaded":12.7}`,
	))

	a, b, c := resp.Plugins[0], resp.Plugins[1], resp.Plugins[2]

	assert.Equal(t, 0, a.Rating)
	assert.Equal(t, 0, a.NumRatings)
	assert.Equal(t, 1000, a.ActiveInstalls)
	assert.Nil(t, a.Downloaded)

	assert.Equal(t, 100, b.Rating)
	assert.Equal(t, 12, b.NumRatings)
	assert.Equal(t, 0, b.ActiveInstalls)
	require.NotNil(t, b.Downloaded)
	assert.Equal(t, 9876, *b.Downloaded)

	assert.Equal(t, 0, c.Rating)
	require.NotNil(t, c.Downloaded)
	assert.Equal(t, 12, *c.Downloaded)
}

func TestSanitizePayload_DownloadedOmittedInJSON(t *testing.T) {
	resp := SanitizePayload(payloadOf(t, `{"slug":"a","name":"A"}`))

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "downloaded")
	assert.Contains(t, string(out), `"rating":0`)
	assert.Contains(t, string(out), `"active_installs":0`)
}

func TestSanitizePayload_URLFields(t *testing.T) {
	resp := SanitizePayload(payloadOf(t, `{
		"slug": "u",
		"homepage": "javascript:alert(1)",
		"download_link": "https://downloads.example.org/u.1.0.zip",
		"author_profile": "//profiles.example.org/jane",
		"icons": {
			"1x": "https://ps.w.org/u/assets/icon-128x128.png",
			"2x": "data:image/png;base64,AAAA",
			"svg": "not a url",
			"default": 7,
			"": "https://ps.w.org/u/assets/icon.svg"
		}
	}`))

	item := resp.Plugins[0]
	assert.Empty(t, item.Homepage)
	assert.Equal(t, "https://downloads.example.org/u.1.0.zip", item.DownloadLink)
	assert.Empty(t, item.AuthorProfile)
	assert.Equal(t, map[string]string{"1x": "https://ps.w.org/u/assets/icon-128x128.png"}, item.Icons)
}

func TestSanitizePayload_ScalarCoercion(t *testing.T) {
	resp := SanitizePayload(payloadOf(t, `{"slug":"s","version":2.5,"requires":false,"tested":["6.5"],"requires_php":"7.4\u0000"}`))

	item := resp.Plugins[0]
	assert.Equal(t, "2.5", item.Version)
	assert.Empty(t, item.Requires)
	assert.Empty(t, item.Tested)
	assert.Equal(t, "7.4", item.RequiresPHP)
}

func TestSanitizePayload_SkipsNonObjectItems(t *testing.T) {
	resp := SanitizePayload(payloadOf(t, `"just a string"`, `{"slug":"ok"}`, `[1,2]`))

	require.Len(t, resp.Plugins, 1)
	assert.Equal(t, "ok", resp.Plugins[0].Slug)
}

func TestSanitizePayload_MistypedIcons(t *testing.T) {
	tests := []struct {
		name  string
		icons string
	}{
		{"empty array", `[]`},
		{"string", `"none"`},
		{"boolean", `false`},
		{"null", `null`},
		{"number", `12`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := SanitizePayload(payloadOf(t,
				`{"slug":"akismet","name":"Caf&eacute; Plugin","rating":90,"icons":`+tt.icons+`}`))

			require.Len(t, resp.Plugins, 1)
			item := resp.Plugins[0]
			assert.Equal(t, "akismet", item.Slug)
			assert.Equal(t, "Café Plugin", item.Name)
			assert.Equal(t, 90, item.Rating)
			assert.Nil(t, item.Icons)
		})
	}
}

func TestSanitizePayload_MissingInfo(t *testing.T) {
	resp := SanitizePayload(&domain.RawCatalogPayload{})

	assert.NotNil(t, resp.Plugins)
	assert.Empty(t, resp.Plugins)
	assert.Equal(t, 0, resp.Info.Results)

	resp = SanitizePayload(nil)
	assert.NotNil(t, resp.Plugins)
}

func TestSanitize_Idempotent(t *testing.T) {
	once := SanitizePayload(payloadOf(t,
		`{"slug":" x ","name":"&amp;lt;b&amp;gt;Bold&amp;lt;/b&amp;gt; &quot;quoted&quot;","short_description":"a &lt; b &amp;&amp; c\t\td","author":"école","rating":"88","icons":{"1x":"https://ps.w.org/x/a.png?v=1&amp;w=2"}}`,
		`{"slug":"y","name":"5 &lt; 6 <3","homepage":"https://example.com/path?a=1&b=2","rating":101}`,
	))

	twice := SanitizeResponse(once)

	assert.Equal(t, once, twice)
}

func TestCleanText(t *testing.T) {
	tests := map[string]string{
		"  plain  ":             "plain",
		"line\nbreak\ttab":      "line break tab",
		"ctrl\x07char":          "ctrlchar",
		"e\u0301":               "\u00e9",
		"&lt;i&gt;x&lt;/i&gt;":  "x",
		"bad\xffutf8":           "badutf8",
		"Tom &amp; Jerry":       "Tom & Jerry",
		"<style>p{}</style>Hi!": "Hi!",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanText(in), "%q", in)
	}
}

func TestCleanURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a", CleanURL(" https://example.com/a "))
	assert.Equal(t, "http://example.com", CleanURL("http://example.com"))
	assert.Empty(t, CleanURL("ftp://example.com/file"))
	assert.Empty(t, CleanURL("/relative/path"))
	assert.Empty(t, CleanURL("https://"))
	assert.Empty(t, CleanURL(""))
}
