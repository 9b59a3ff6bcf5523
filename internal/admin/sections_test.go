package admin

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/site"
	"github.com/folio/folio/pkg/client"
)

func loggedIn(t *testing.T) *client.Client {
	t.Helper()
	c := client.New(backend(t).URL)
	_, err := c.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	return c
}

func TestSkillsEditorPersistsEveryChange(t *testing.T) {
	c := loggedIn(t)
	rec := &recorder{}
	e := NewSkillsEditor(c.Skills, rec)
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	assert.True(t, e.Skills().Empty())

	require.NoError(t, e.AddSoft(ctx, "  Communication "))
	require.NoError(t, e.AddSoft(ctx, "Communication"))
	require.NoError(t, e.AddTechnical(ctx, models.TechnicalSkill{Name: "Go", Level: 90, Category: "Backend"}))

	stored, err := c.Skills.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Communication"}, stored.Soft, "duplicates are not sent")
	require.Len(t, stored.Technical, 1)
	id := stored.Technical[0].ID
	assert.NotEmpty(t, id)

	skill := stored.Technical[0]
	skill.Level = 95
	require.NoError(t, e.UpdateTechnical(ctx, skill))
	require.NoError(t, e.RemoveSoft(ctx, "Communication"))

	stored, err = c.Skills.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored.Soft)
	assert.Equal(t, 95, stored.Technical[0].Level)

	require.NoError(t, e.RemoveTechnical(ctx, id))
	assert.Empty(t, e.Skills().Technical)
	assert.Equal(t, "Technical skill removed", rec.last().Description)
}

func TestSkillsEditorRejectsIncompleteTechnicalSkill(t *testing.T) {
	src := &fakeDoc[models.Skills]{doc: *models.DefaultSkills()}
	e := NewSkillsEditor(src, nil)
	err := e.AddTechnical(context.Background(), models.TechnicalSkill{Name: "Go"})
	var inc *IncompleteError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, []string{"category"}, inc.Fields)
	assert.Zero(t, src.updates)
}

func TestSkillsEditorFailureNotifies(t *testing.T) {
	src := &fakeDoc[models.Skills]{doc: *models.DefaultSkills(), updErr: errBoom}
	rec := &recorder{}
	e := NewSkillsEditor(src, rec)
	require.ErrorIs(t, e.AddSoft(context.Background(), "Focus"), errBoom)
	assert.Equal(t, "Failed to update skills", rec.last().Description)
	assert.Empty(t, e.Skills().Soft)
}

func TestSettingsEditorSections(t *testing.T) {
	src := &fakeDoc[models.Settings]{doc: models.Settings{
		Theme:    "dark",
		Sections: map[string]models.SectionConfig{"hero": {Enabled: true, Order: 3}},
	}}
	e := NewSettingsEditor(src, nil)
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	rows := e.Sections()
	require.Len(t, rows, len(site.Catalog))
	assert.Equal(t, SectionRow{ID: "hero", Label: "Hero", Enabled: true, Order: 3}, rows[0])
	assert.Equal(t, SectionRow{ID: "about", Label: "About", Enabled: true, Order: 0}, rows[1])

	require.NoError(t, e.SetSectionEnabled("blog", false))
	require.NoError(t, e.SetSectionOrder("about", "7th"))
	assert.Error(t, e.SetSectionOrder("footer", "1"))
	assert.Equal(t, "dark", src.doc.Theme)
	assert.Zero(t, src.updates, "section edits stay local until save")

	require.NoError(t, e.Save(ctx))
	assert.Equal(t, models.SectionConfig{Enabled: false, Order: 0}, src.doc.Sections["blog"])
	assert.Equal(t, models.SectionConfig{Enabled: true, Order: 7}, src.doc.Sections["about"])
	assert.Equal(t, 3, src.doc.Sections["hero"].Order)
}

func TestSettingsEditorRejectsUnknownTheme(t *testing.T) {
	src := &fakeDoc[models.Settings]{doc: *models.DefaultSettings()}
	e := NewSettingsEditor(src, nil)
	require.NoError(t, e.Load(context.Background()))
	require.NoError(t, e.Edit(func(s *models.Settings) { s.Theme = "neon" }))
	assert.False(t, e.CanSubmit())
	var inc *IncompleteError
	require.ErrorAs(t, e.Save(context.Background()), &inc)
}

func TestMessageList(t *testing.T) {
	msgs := []models.ContactMessage{{Name: "a"}, {Name: "b", Read: true}}
	m := NewMessageList(func(context.Context) ([]models.ContactMessage, error) { return msgs, nil }, nil)
	assert.Equal(t, Loading, m.State())
	require.NoError(t, m.Load(context.Background()))
	assert.Len(t, m.Messages(), 2)
	assert.Equal(t, 1, m.Unread())

	rec := &recorder{}
	failing := NewMessageList(func(context.Context) ([]models.ContactMessage, error) { return nil, errBoom }, rec)
	require.Error(t, failing.Load(context.Background()))
	assert.Empty(t, failing.Messages())
	assert.Equal(t, "Failed to fetch messages", rec.last().Description)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestUploadFieldStoresURL(t *testing.T) {
	c := loggedIn(t)
	eds := NewEditors(c, nil)
	ctx := context.Background()
	require.NoError(t, eds.Projects.Load(ctx))

	eds.Projects.StartCreate()
	err := eds.Projects.UploadField(ctx, c, SubfolderProjects, "shot.png", bytes.NewReader(pngBytes(t)),
		func(p *models.Project, url string) { p.Image = url })
	require.NoError(t, err)
	form, _ := eds.Projects.Form()
	assert.Contains(t, form.Image, "/api/files/projects/")

	require.NoError(t, eds.Hero.Load(ctx))
	err = eds.Hero.UploadField(ctx, c, SubfolderHero, "me.png", bytes.NewReader(pngBytes(t)),
		func(h *models.Hero, url string) { h.ProfileImage = url })
	require.NoError(t, err)
	assert.Contains(t, eds.Hero.Form().ProfileImage, "/api/files/hero/")
}

type failingUploader struct{}

func (failingUploader) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", errBoom
}

func TestUploadFieldFailureLeavesFieldUnset(t *testing.T) {
	rec := &recorder{}
	e := certEditor(certSource(), rec)
	assert.ErrorIs(t, e.UploadField(context.Background(), failingUploader{}, SubfolderCertifications, "x.png", nil,
		func(c *models.Certification, url string) { c.Image = url }), ErrNotEditing)

	e.StartCreate()
	err := e.UploadField(context.Background(), failingUploader{}, SubfolderCertifications, "x.png", nil,
		func(c *models.Certification, url string) { c.Image = url })
	require.ErrorIs(t, err, errBoom)
	form, _ := e.Form()
	assert.Empty(t, form.Image)
	assert.Equal(t, "Failed to upload image", rec.last().Description)
}
