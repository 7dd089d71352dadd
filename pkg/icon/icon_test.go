package icon

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRename_UpdatesLastPathSegment(t *testing.T) {
	tests := []struct {
		name     string
		icon     Icon
		newName  string
		wantPath string
	}{
		{"nested path", Icon{Name: "a.svg", Path: "/icons/ui/a.svg"}, "b.svg", "/icons/ui/b.svg"},
		{"bare name", Icon{Name: "a.svg", Path: "a.svg"}, "b.svg", "b.svg"},
		{"empty path uses folder", Icon{Name: "a.svg", Folder: "icons"}, "b.svg", "icons/b.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic := tt.icon
			ic.Rename(tt.newName)
			assert.Equal(t, tt.newName, ic.Name)
			assert.Equal(t, tt.wantPath, ic.Path)
		})
	}
}

func TestClone_DoesNotShareTags(t *testing.T) {
	orig := Icon{Name: "a.svg", Tags: []string{"x"}}
	c := orig.Clone()
	c.Tags[0] = "y"
	assert.Equal(t, "x", orig.Tags[0])
}

func TestSelection(t *testing.T) {
	icons := []Icon{
		{Name: "arrow-left.svg", Path: "/icons/arrow-left.svg"},
		{Name: "arrow-right.svg", Path: "/icons/arrow-right.svg"},
		{Name: "user.svg", Path: "/icons/user.svg"},
	}

	all := SelectAll(icons)
	assert.Equal(t, 3, CountSelected(all))
	assert.Equal(t, 0, CountSelected(icons), "original collection must stay untouched")
	assert.Equal(t, 0, CountSelected(ClearSelection(all)))

	arrows, err := SelectMatching(icons, "ARROW-*")
	require.NoError(t, err)
	assert.Equal(t, 2, CountSelected(arrows))
	assert.False(t, arrows[2].Selected)

	_, err = SelectMatching(icons, "[")
	assert.Error(t, err)
}

func TestFormatAndParseFileSize(t *testing.T) {
	assert.Equal(t, "512B", FormatFileSize(512))
	assert.Equal(t, "1.5KB", FormatFileSize(1536))
	assert.Equal(t, "2.0MB", FormatFileSize(2*1024*1024))

	assert.Equal(t, 1536.0, ParseFileSize("1.5KB"))
	assert.Equal(t, 2097152.0, ParseFileSize("2MB"))
	assert.Equal(t, 300.0, ParseFileSize("300B"))
	assert.Equal(t, 0.0, ParseFileSize("n/a"))
}

func TestEstimateDimensions(t *testing.T) {
	assert.Equal(t, "32x16", EstimateDimensions(`<svg width="32" height='16'>`))
	assert.Equal(t, "24x24", EstimateDimensions(`<svg viewBox="0 0 10 10">`))

	w, h := ParseDimensions("32x16")
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
}

func TestCollectFS(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24"><path/></svg>`)
	fsys := fstest.MapFS{
		"home.svg":             {Data: svg},
		"nav/arrows/left.svg":  {Data: svg},
		"other/home.svg":       {Data: svg},
		"broken/bad.svg":       {Data: []byte("not an svg")},
		"nav/readme.txt":       {Data: []byte("skip me")},
	}

	col, err := CollectFS(fsys)
	require.NoError(t, err)

	// broken/bad.svg < home.svg < nav/... < other/home.svg
	require.Len(t, col.Icons, 2)
	assert.Equal(t, "home.svg", col.Icons[0].Name)
	assert.Empty(t, col.Icons[0].Tags)
	assert.Equal(t, "/icons/home.svg", col.Icons[0].Path)

	assert.Equal(t, "left.svg", col.Icons[1].Name)
	assert.Equal(t, []string{"nav", "arrows"}, col.Icons[1].Tags)
	assert.False(t, col.Icons[1].Selected)
	assert.Equal(t, "24x24", col.Icons[1].Dimensions)

	assert.Equal(t, 1, col.Stats.Duplicates)
	assert.Equal(t, 1, col.Stats.Errors)
	assert.Equal(t, 2, col.Stats.TotalFiles)
	assert.Equal(t, 2, col.Stats.UniqueTags)
	assert.Equal(t, []string{"arrows", "nav"}, UniqueTags(col.Icons))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/icons/a.svg", JoinPath("/icons", "a.svg"))
	assert.Equal(t, "/icons/ui/a.svg", JoinPath("/icons/ui/", "a.svg"))
	assert.Equal(t, "icons/a.svg", JoinPath("icons", "a.svg"))
	assert.Equal(t, "a.svg", JoinPath("", "a.svg"))
	assert.Equal(t, "/a.svg", JoinPath("/", "a.svg"))
}
