package site

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/models"
)

func TestCarouselTickWraps(t *testing.T) {
	c := NewCarousel(3)
	require.True(t, c.AutoPlaying())
	c.Tick()
	c.Tick()
	assert.Equal(t, 2, c.CurrentIndex())
	c.Tick()
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestCarouselSingleSlideNeverMoves(t *testing.T) {
	c := NewCarousel(1)
	assert.False(t, c.Tick())
	assert.Equal(t, 0, c.CurrentIndex())
	c.Next()
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestCarouselManualNavigationStopsAutoplay(t *testing.T) {
	c := NewCarousel(4)
	c.Prev()
	assert.Equal(t, 3, c.CurrentIndex())
	assert.False(t, c.AutoPlaying())
	assert.False(t, c.Tick(), "ticks are ignored once autoplay is off")
	c.Next()
	assert.Equal(t, 0, c.CurrentIndex())
	c.GoTo(2)
	assert.Equal(t, 2, c.CurrentIndex())
	c.GoTo(9)
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestCarouselGoToOutOfRangeKeepsAutoplay(t *testing.T) {
	c := NewCarousel(2)
	c.GoTo(-1)
	assert.True(t, c.AutoPlaying())
}

func TestCarouselRunStopsOnManualNavigation(t *testing.T) {
	c := NewCarousel(3)
	done := make(chan struct{})
	go func() {
		c.Run(context.Background(), 5*time.Millisecond)
		close(done)
	}()
	require.Eventually(t, func() bool { return c.CurrentIndex() != 0 }, time.Second, time.Millisecond)
	c.Next()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after autoplay was disabled")
	}
}

func TestCarouselRunStopsOnCancel(t *testing.T) {
	c := NewCarousel(3)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, c.AutoPlaying())
}

func TestCarouselRunReturnsWhenIdle(t *testing.T) {
	done := make(chan struct{})
	go func() {
		NewCarousel(1).Run(context.Background(), time.Millisecond)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should not tick a single slide")
	}
}

func TestProjectFilter(t *testing.T) {
	projects := []models.Project{
		{Title: "a", Category: "web", Featured: true},
		{Title: "b", Category: "cli"},
		{Title: "c", Category: "web"},
	}
	f := NewFilter(ProjectCategory)
	assert.Equal(t, All, f.Active)
	assert.Len(t, f.Apply(projects), 3)
	assert.Equal(t, []string{"web", "cli"}, f.Categories(projects))

	f.Set("web")
	got := f.Apply(projects)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "c", got[1].Title)

	featured, regular := SplitFeatured(got)
	assert.Len(t, featured, 1)
	assert.Len(t, regular, 1)

	f.Set("")
	assert.Equal(t, All, f.Active)
}

func TestSkillFilter(t *testing.T) {
	skills := []models.TechnicalSkill{{Name: "Go", Category: "Backend"}, {Name: "React", Category: "Frontend"}}
	f := NewFilter(SkillCategory)
	f.Set("Frontend")
	assert.Equal(t, []models.TechnicalSkill{{Name: "React", Category: "Frontend"}}, f.Apply(skills))
}

type fakeScroller map[string]bool

func (f fakeScroller) ScrollTo(anchor string) bool { return f[anchor] }

func TestHeader(t *testing.T) {
	h := NewHeader(fakeScroller{"about": true})
	h.OnScroll(50)
	assert.False(t, h.Scrolled())
	h.OnScroll(51)
	assert.True(t, h.Scrolled())

	h.ToggleMenu()
	require.True(t, h.MenuOpen())
	assert.False(t, h.Navigate("missing"))
	assert.True(t, h.MenuOpen(), "unknown anchors leave the menu open")
	assert.True(t, h.Navigate("about"))
	assert.False(t, h.MenuOpen())
}

func TestVisibleNavItemsAndInitials(t *testing.T) {
	items := VisibleNavItems([]Composed{{ID: "contact"}, {ID: "hero"}, {ID: "blog"}})
	assert.Equal(t, []NavItem{{ID: "hero", Label: "Home"}, {ID: "contact", Label: "Contact"}}, items)
	assert.Equal(t, "AL", Initials("ada  lovelace"))
	assert.Equal(t, "", Initials(""))
}
