package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/client"
)

func certSource(items ...models.Certification) *fakeList[models.Certification] {
	return &fakeList[models.Certification]{
		items: items,
		setID: func(c *models.Certification, id string) { c.ID = id },
	}
}

func certEditor(src ListSource[models.Certification], n Notifier) *ListEditor[models.Certification] {
	return NewListEditor[models.Certification](src, ListSpec[models.Certification]{
		Label:    "Certification",
		Plural:   "certifications",
		SetOrder: func(c *models.Certification, i int) { c.Order = i },
	}, n)
}

func TestListEditorCreate(t *testing.T) {
	existing := models.Certification{Name: "A", Issuer: "B", Date: "2020"}
	existing.ID = "c0"
	src := certSource(existing)
	rec := &recorder{}
	e := certEditor(src, rec)
	ctx := context.Background()

	assert.Equal(t, Loading, e.State())
	require.NoError(t, e.Load(ctx))
	assert.Equal(t, Idle, e.State())
	require.Len(t, e.Items(), 1)

	e.StartCreate()
	form, target := e.Form()
	assert.Equal(t, Editing, e.State())
	assert.Equal(t, 1, form.Order, "new forms are ordered after the current list")
	assert.Empty(t, target)
	assert.False(t, e.CanSubmit())

	require.NoError(t, e.Edit(func(c *models.Certification) {
		c.Name, c.Issuer, c.Date = "X", "Y", "2024"
	}))
	assert.True(t, e.CanSubmit())
	require.NoError(t, e.Save(ctx))

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, []string{"create"}, src.callLog())
	require.Len(t, e.Items(), 2)
	assert.Equal(t, "Certification created successfully", rec.last().Description)
	form, _ = e.Form()
	assert.Empty(t, form.Name, "form is reset after save")
}

func TestListEditorMissingFieldNeverDispatches(t *testing.T) {
	src := certSource()
	e := certEditor(src, nil)
	require.NoError(t, e.Load(context.Background()))
	e.StartCreate()
	require.NoError(t, e.Edit(func(c *models.Certification) { c.Name, c.Date = "X", "2024" }))

	assert.False(t, e.CanSubmit())
	err := e.Save(context.Background())
	var inc *IncompleteError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, []string{"issuer"}, inc.Fields)
	assert.Empty(t, src.callLog())
	assert.Equal(t, Editing, e.State())
}

func TestListEditorSaveFailureKeepsInput(t *testing.T) {
	src := certSource()
	src.saveErr = errBoom
	rec := &recorder{}
	e := certEditor(src, rec)
	e.StartCreate()
	require.NoError(t, e.Edit(func(c *models.Certification) { c.Name, c.Issuer, c.Date = "X", "Y", "2024" }))

	require.ErrorIs(t, e.Save(context.Background()), errBoom)
	assert.Equal(t, Editing, e.State())
	form, _ := e.Form()
	assert.Equal(t, "X", form.Name)
	assert.Equal(t, Notification{Title: "Error", Description: "Failed to save certification", Variant: VariantDestructive}, rec.last())
}

func TestListEditorEditDispatchesUpdate(t *testing.T) {
	item := models.Certification{Name: "A", Issuer: "B", Date: "2020"}
	item.ID = "c1"
	src := certSource(item)
	e := certEditor(src, nil)
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	e.StartEdit(e.Items()[0])
	_, target := e.Form()
	assert.Equal(t, "c1", target)
	require.NoError(t, e.Edit(func(c *models.Certification) { c.Name = "Renamed" }))
	require.NoError(t, e.Save(ctx))
	assert.Equal(t, []string{"update:c1"}, src.callLog())
	assert.Equal(t, "Renamed", e.Items()[0].Name)
}

func TestListEditorCancel(t *testing.T) {
	e := certEditor(certSource(), nil)
	e.StartCreate()
	require.NoError(t, e.Edit(func(c *models.Certification) { c.Name = "draft" }))
	e.Cancel()
	assert.Equal(t, Idle, e.State())
	assert.ErrorIs(t, e.Edit(func(*models.Certification) {}), ErrNotEditing)
	assert.ErrorIs(t, e.Save(context.Background()), ErrNotEditing)
}

func TestListEditorDelete(t *testing.T) {
	item := models.Certification{Name: "A", Issuer: "B", Date: "2020"}
	item.ID = "c1"
	src := certSource(item)
	rec := &recorder{}
	e := certEditor(src, rec)
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	no := ConfirmFunc(func(string) bool { return false })
	yes := ConfirmFunc(func(string) bool { return true })

	assert.ErrorIs(t, e.Delete(ctx, "c1", no), ErrNotApproved)
	assert.ErrorIs(t, e.Delete(ctx, "c1", nil), ErrNotApproved)
	assert.Empty(t, src.callLog())

	src.delErr = errBoom
	require.ErrorIs(t, e.Delete(ctx, "c1", yes), errBoom)
	assert.Len(t, e.Items(), 1, "failed delete leaves the list as it was")
	assert.Equal(t, "Failed to delete certification", rec.last().Description)

	src.delErr = nil
	require.NoError(t, e.Delete(ctx, "c1", yes))
	assert.Empty(t, e.Items())
	assert.Equal(t, "Certification deleted successfully", rec.last().Description)
}

func TestListEditorLoadFailure(t *testing.T) {
	src := certSource()
	src.allErr = errBoom
	rec := &recorder{}
	e := certEditor(src, rec)

	require.ErrorIs(t, e.Load(context.Background()), errBoom)
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.Items())
	assert.Equal(t, "Failed to fetch certifications", rec.last().Description)
}

func TestDocEditorLifecycle(t *testing.T) {
	src := &fakeDoc[models.Hero]{doc: models.Hero{Name: "Ada", JobTitle: "Engineer"}}
	rec := &recorder{}
	e := NewDocEditor[models.Hero](src, "Hero section", func() models.Hero { return *models.DefaultHero() }, rec)
	ctx := context.Background()

	assert.Equal(t, "Your Name", e.Form().Name)
	require.NoError(t, e.Load(ctx))
	assert.Equal(t, "Ada", e.Form().Name)

	require.NoError(t, e.Edit(func(h *models.Hero) { h.Name = "" }))
	assert.Equal(t, Editing, e.State())
	assert.False(t, e.CanSubmit())
	e.Cancel()
	assert.Equal(t, "Ada", e.Form().Name)

	require.NoError(t, e.Edit(func(h *models.Hero) { h.Tagline = "Hello" }))
	src.updErr = errBoom
	require.ErrorIs(t, e.Save(ctx), errBoom)
	assert.Equal(t, Editing, e.State())
	assert.Equal(t, "Hello", e.Form().Tagline)

	src.updErr = nil
	require.NoError(t, e.Save(ctx))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, "Hello", e.Document().Tagline)
	assert.Equal(t, "Hero section updated successfully", rec.last().Description)
}

func TestDocEditorFetchFailureKeepsDefaults(t *testing.T) {
	src := &fakeDoc[models.About]{getErr: errBoom}
	rec := &recorder{}
	e := NewDocEditor[models.About](src, "About section", func() models.About { return *models.DefaultAbout() }, rec)

	require.Error(t, e.Load(context.Background()))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, "About Me", e.Form().Title)
	assert.Equal(t, 1, rec.count())
}

func TestCertificationScenarioAgainstBackend(t *testing.T) {
	srv := backend(t)
	c := client.New(srv.URL)
	ctx := context.Background()
	_, err := c.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	eds := NewEditors(c, nil)
	require.NoError(t, eds.LoadAll(ctx))

	e := eds.Certifications
	e.StartCreate()
	require.NoError(t, e.Edit(func(x *models.Certification) { x.Name, x.Date = "X", "2024" }))
	assert.False(t, e.CanSubmit())
	require.NoError(t, e.Edit(func(x *models.Certification) { x.Issuer = "Y" }))
	require.True(t, e.CanSubmit())
	require.NoError(t, e.Save(ctx))

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "X", items[0].Name)
	assert.NotEmpty(t, items[0].ID)

	public, err := c.Certifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
	assert.Equal(t, 1, eds.Stats().Certifications)
}

func TestIncompleteErrorMessage(t *testing.T) {
	err := error(&IncompleteError{Fields: []string{"name", "issuer"}})
	assert.EqualError(t, err, "admin: missing required fields: name, issuer")
	assert.False(t, errors.Is(err, ErrBusy))
}
