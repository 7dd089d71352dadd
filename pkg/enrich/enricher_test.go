package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/features"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
)

const blackSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="#000" d="M3 6h18"/></svg>`

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Emit(ctx context.Context, ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func selected(name, content string) icon.Icon {
	ic := icon.New("/icons", name, content)
	ic.Selected = true
	return ic
}

func TestEnrich_UnselectedPassThrough(t *testing.T) {
	ic := icon.New("/icons", "Menu Icon.svg", blackSVG)
	calls := 0
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		calls++
		return sense.Suggestion{Name: "x"}, nil
	})

	out, err := New(client).Enrich(context.Background(), ic, features.Defaults())
	require.NoError(t, err)
	assert.Equal(t, ic, out)
	assert.Zero(t, calls)
}

func TestEnrich_KebabAndRecolor(t *testing.T) {
	f := features.Features{
		Colorization:    true,
		ReplaceBlack:    true,
		AddRootFill:     true,
		Standardization: true,
		KebabCase:       true,
	}

	in := selected("menu Icon.svg", `<svg viewBox="0 0 24 24"><path d="M3 6h18"/></svg>`)
	out, err := New(nil).Enrich(context.Background(), in, f)
	require.NoError(t, err)

	assert.Equal(t, "menu-icon.svg", out.Name)
	assert.Equal(t, "/icons/menu-icon.svg", out.Path)
	assert.Contains(t, out.Content, `fill="currentColor"`)

	// Вход не меняется
	assert.Equal(t, "menu Icon.svg", in.Name)
	assert.Equal(t, "/icons/menu Icon.svg", in.Path)
}

func TestEnrich_PrefixDefaultAndCustom(t *testing.T) {
	f := features.Features{Standardization: true, KebabCase: true, AddPrefix: true}

	out, err := New(nil).Enrich(context.Background(), selected("Home.svg", ""), f)
	require.NoError(t, err)
	assert.Equal(t, "icon-home.svg", out.Name)

	f.CustomPrefix = "ui-"
	out, err = New(nil).Enrich(context.Background(), selected("ui-home.svg", ""), f)
	require.NoError(t, err)
	assert.Equal(t, "ui-home.svg", out.Name, "prefix is not duplicated")
}

func TestEnrich_ParentGatesChildren(t *testing.T) {
	f := features.Features{KebabCase: true, AddPrefix: true, ReplaceBlack: true}

	in := selected("Menu Icon.svg", blackSVG)
	out, err := New(nil).Enrich(context.Background(), in, f)
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Content, out.Content)
}

func TestEnrich_SenseNamingAndTagging(t *testing.T) {
	var gotVisual bool
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		gotVisual = visual
		return sense.Suggestion{Name: "hamburger-menu", Tags: []string{"navigation"}}, nil
	})

	f := features.Features{SenseNaming: true, SenseTagging: true, Standardization: true, AddPrefix: true}
	out, err := New(client).Enrich(context.Background(), selected("menu.svg", blackSVG), f)
	require.NoError(t, err)

	assert.True(t, gotVisual)
	assert.Equal(t, "icon-hamburger-menu.svg", out.Name)
	assert.Equal(t, "/icons/icon-hamburger-menu.svg", out.Path)
	assert.Equal(t, []string{"navigation"}, out.Tags)
}

func TestEnrich_TaggingOnlyKeepsName(t *testing.T) {
	var gotVisual = true
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		gotVisual = visual
		return sense.Suggestion{Name: "other", Tags: []string{"a", "b"}}, nil
	})

	out, err := New(client).Enrich(context.Background(), selected("menu.svg", blackSVG), features.Features{SenseTagging: true})
	require.NoError(t, err)
	assert.False(t, gotVisual)
	assert.Equal(t, "menu.svg", out.Name)
	assert.Equal(t, []string{"a", "b"}, out.Tags)
}

func TestEnrich_SenseFailureIsWarning(t *testing.T) {
	rec := &recorder{}
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		return sense.Suggestion{}, errors.New("service down")
	})

	in := selected("Menu Icon.svg", blackSVG)
	in.Tags = []string{"keep"}
	f := features.Features{SenseNaming: true, SenseTagging: true, Standardization: true, KebabCase: true}

	out, err := New(client, WithEmitter(rec)).Enrich(context.Background(), in, f)
	require.NoError(t, err)

	// Остальные шаги выполнены, имя и теги от Sense не пришли
	assert.Equal(t, "menu-icon.svg", out.Name)
	assert.Equal(t, []string{"keep"}, out.Tags)

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.EventIconWarning, rec.events[0].Type)
	data := rec.events[0].Data.(events.WarningData)
	assert.Equal(t, StepSense, data.Step)
	assert.Equal(t, "/icons/Menu Icon.svg", data.Icon)
}

func TestEnrich_EmptySuggestionIsWarning(t *testing.T) {
	rec := &recorder{}
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		return sense.Suggestion{}, nil
	})

	in := selected("menu.svg", blackSVG)
	out, err := New(client, WithEmitter(rec)).Enrich(context.Background(), in, features.Features{SenseNaming: true})
	require.NoError(t, err)
	assert.Equal(t, "menu.svg", out.Name)
	require.Len(t, rec.events, 1)
	assert.ErrorIs(t, rec.events[0].Data.(events.WarningData).Err, sense.ErrMalformedSuggestion)
}

func TestEnrich_NilClientIsWarning(t *testing.T) {
	rec := &recorder{}
	out, err := New(nil, WithEmitter(rec)).Enrich(context.Background(), selected("a.svg", ""), features.Features{SenseTagging: true})
	require.NoError(t, err)
	assert.Equal(t, "a.svg", out.Name)
	require.Len(t, rec.events, 1)
	assert.ErrorIs(t, rec.events[0].Data.(events.WarningData).Err, ErrNoClient)
}

func TestEnrich_PanicIsRecovered(t *testing.T) {
	rec := &recorder{}
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		panic("bad icon")
	})

	in := selected("menu.svg", blackSVG)
	out, err := New(client, WithEmitter(rec)).Enrich(context.Background(), in, features.Features{SenseNaming: true})
	require.NoError(t, err)
	assert.Equal(t, in, out)
	require.Len(t, rec.events, 1)
	data := rec.events[0].Data.(events.WarningData)
	assert.Equal(t, StepSense, data.Step)
	assert.ErrorContains(t, data.Err, "bad icon")
}

func TestEnrich_SensePanicKeepsOtherSteps(t *testing.T) {
	rec := &recorder{}
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		panic("bad icon")
	})

	in := selected("Menu Icon.svg", blackSVG)
	in.Tags = []string{"keep"}
	f := features.Features{
		SenseTagging:    true,
		Standardization: true,
		KebabCase:       true,
		Colorization:    true,
		ReplaceBlack:    true,
	}

	out, err := New(client, WithEmitter(rec)).Enrich(context.Background(), in, f)
	require.NoError(t, err)

	assert.Equal(t, "menu-icon.svg", out.Name)
	assert.Contains(t, out.Content, `fill="currentColor"`)
	assert.NotContains(t, out.Content, `fill="#000"`)
	assert.Equal(t, []string{"keep"}, out.Tags)
	require.Len(t, rec.events, 1)
	assert.Equal(t, StepSense, rec.events[0].Data.(events.WarningData).Step)
}

func TestEnrich_MissingTagsKeepsOldTags(t *testing.T) {
	rec := &recorder{}
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		return sense.Suggestion{Name: "arrow"}, nil
	})

	in := selected("menu.svg", blackSVG)
	in.Tags = []string{"nav", "ui"}

	out, err := New(client, WithEmitter(rec)).Enrich(context.Background(), in, features.Features{SenseTagging: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"nav", "ui"}, out.Tags)
	assert.Equal(t, "menu.svg", out.Name)
	require.Len(t, rec.events, 1)
	assert.ErrorIs(t, rec.events[0].Data.(events.WarningData).Err, sense.ErrMalformedSuggestion)
}

func TestEnrich_EmptyTagListIsApplied(t *testing.T) {
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		return sense.Suggestion{Name: "arrow", Tags: []string{}}, nil
	})

	in := selected("menu.svg", blackSVG)
	in.Tags = []string{"nav"}

	out, err := New(client).Enrich(context.Background(), in, features.Features{SenseTagging: true})
	require.NoError(t, err)
	assert.Empty(t, out.Tags)
}

func TestEnrich_MissingNameWhenNaming(t *testing.T) {
	rec := &recorder{}
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		return sense.Suggestion{Name: "!!!", Tags: []string{"a"}}, nil
	})

	in := selected("menu.svg", blackSVG)
	in.Tags = []string{"keep"}
	f := features.Features{SenseNaming: true, SenseTagging: true}

	out, err := New(client, WithEmitter(rec)).Enrich(context.Background(), in, f)
	require.NoError(t, err)
	assert.Equal(t, "menu.svg", out.Name)
	assert.Equal(t, []string{"keep"}, out.Tags)
	require.Len(t, rec.events, 1)
	assert.ErrorIs(t, rec.events[0].Data.(events.WarningData).Err, sense.ErrMalformedSuggestion)
}

func TestEnrich_SenseNameIsCleaned(t *testing.T) {
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		return sense.Suggestion{Name: " Menu Icon ", Tags: []string{" Nav "}}, nil
	})

	f := features.Features{SenseNaming: true, SenseTagging: true}
	out, err := New(client).Enrich(context.Background(), selected("a.svg", blackSVG), f)
	require.NoError(t, err)
	assert.Equal(t, "menu-icon.svg", out.Name)
	assert.Equal(t, "/icons/menu-icon.svg", out.Path)
	assert.Equal(t, []string{"nav"}, out.Tags)
}

func TestEnrich_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Enrich(ctx, selected("a.svg", ""), features.Defaults())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnrich_CancelDuringSense(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := sense.ClientFunc(func(ctx context.Context, ic icon.Icon, visual bool) (sense.Suggestion, error) {
		cancel()
		return sense.Suggestion{}, ctx.Err()
	})

	_, err := New(client).Enrich(ctx, selected("a.svg", ""), features.Features{SenseNaming: true})
	assert.ErrorIs(t, err, context.Canceled)
}
