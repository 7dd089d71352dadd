package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecolor_ReplaceBlack(t *testing.T) {
	in := `<svg fill="#000000"><path stroke="#000"/><path fill="black"/><path stroke="black"/><path fill="#000"/></svg>`

	out := Recolor(in, RecolorOptions{ReplaceBlack: true, RemoveWhiteBg: true})

	assert.Equal(t,
		`<svg fill="currentColor"><path stroke="currentColor"/><path fill="currentColor"/><path stroke="currentColor"/><path fill="currentColor"/></svg>`,
		out)
}

func TestRecolor_ReplaceBlackOffRevertsCurrentColor(t *testing.T) {
	in := `<svg fill="currentColor"><path stroke="currentColor"/></svg>`
	out := Recolor(in, RecolorOptions{RemoveWhiteBg: true})
	assert.Equal(t, `<svg fill="black"><path stroke="black"/></svg>`, out)
}

func TestRecolor_ToggleIsInvertibleOnBlackTokens(t *testing.T) {
	for _, tok := range []string{`#000000`, `#000`, `black`} {
		in := `<svg><path fill="` + tok + `" stroke="` + tok + `"/></svg>`
		on := Recolor(in, RecolorOptions{ReplaceBlack: true, RemoveWhiteBg: true})
		off := Recolor(on, RecolorOptions{ReplaceBlack: false, RemoveWhiteBg: true})
		assert.Equal(t, `<svg><path fill="black" stroke="black"/></svg>`, off, tok)
	}
}

func TestRecolor_WhiteBackground(t *testing.T) {
	in := `<svg><rect fill="#ffffff"/><rect fill="#fff"/><rect fill="white"/><rect stroke="white"/></svg>`

	on := Recolor(in, RecolorOptions{ReplaceBlack: true, RemoveWhiteBg: true})
	assert.Equal(t, `<svg><rect fill="none"/><rect fill="none"/><rect fill="none"/><rect stroke="white"/></svg>`, on)

	off := Recolor(on, RecolorOptions{ReplaceBlack: true, RemoveWhiteBg: false})
	assert.Equal(t, `<svg><rect fill="white"/><rect fill="white"/><rect fill="white"/><rect stroke="white"/></svg>`, off)
}

func TestRecolor_AddRootFill(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no fill anywhere",
			in:   `<svg viewBox="0 0 24 24"><path d="M0 0"/></svg>`,
			want: `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M0 0"/></svg>`,
		},
		{
			name: "only first root tag",
			in:   `<svg a="1"><svg b="2"></svg></svg>`,
			want: `<svg a="1" fill="currentColor"><svg b="2"></svg></svg>`,
		},
		{
			name: "existing fill keeps content",
			in:   `<svg><path fill="red"/></svg>`,
			want: `<svg><path fill="red"/></svg>`,
		},
		{
			name: "no root tag",
			in:   `<g><path/></g>`,
			want: `<g><path/></g>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recolor(tt.in, RecolorOptions{ReplaceBlack: true, RemoveWhiteBg: true, AddRootFill: true})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecolor_RootFillSeesEarlierSteps(t *testing.T) {
	// fill="none" превращается в fill="white" до проверки на наличие fill=.
	in := `<svg fill="none"><path/></svg>`
	got := Recolor(in, RecolorOptions{AddRootFill: true})
	assert.Equal(t, `<svg fill="white"><path/></svg>`, got)
}
