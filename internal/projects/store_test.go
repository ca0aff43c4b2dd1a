package projects_test

import (
	"context"
	"testing"
	"time"

	"album-studio/internal/models"
	"album-studio/internal/projects"
	"album-studio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weddingInput() projects.Input {
	return projects.Input{
		Title:          "Свадебный альбом \"Анна & Михаил\"",
		AlbumType:      models.AlbumWedding,
		Description:    "Выездная церемония",
		ManagerID:      "1",
		PhotographerID: "2",
		DesignerID:     "3",
		Deadline:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateProject(t *testing.T) {
	env := testutil.New(t)
	store := projects.NewStore(env.DB)
	ctx := context.Background()

	p, err := store.Create(ctx, weddingInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.StatusPlanning, p.Status)
	assert.Zero(t, p.PhotosCount)
	assert.Empty(t, p.Files)

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.True(t, p.Deadline.Equal(got.Deadline))
}

func TestCreateProjectValidation(t *testing.T) {
	env := testutil.New(t)
	store := projects.NewStore(env.DB)
	ctx := context.Background()

	cases := map[string]func(*projects.Input){
		"title":           func(in *projects.Input) { in.Title = "  " },
		"album_type":      func(in *projects.Input) { in.AlbumType = "Фотокнига" },
		"deadline":        func(in *projects.Input) { in.Deadline = time.Time{} },
		"photographer_id": func(in *projects.Input) { in.PhotographerID = "3" },
		"designer_id":     func(in *projects.Input) { in.DesignerID = "missing" },
		"manager_id":      func(in *projects.Input) { in.ManagerID = "2" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := weddingInput()
			mutate(&in)
			_, err := store.Create(ctx, in)
			require.ErrorIs(t, err, projects.ErrValidation)
			var ve *projects.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		})
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateAndDeleteProject(t *testing.T) {
	env := testutil.New(t)
	store := projects.NewStore(env.DB)
	ctx := context.Background()

	p, err := store.Create(ctx, weddingInput())
	require.NoError(t, err)

	in := weddingInput()
	in.Title = "Переименован"
	in.DesignerID = ""
	updated, err := store.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Переименован", updated.Title)
	assert.Empty(t, updated.DesignerID)
	assert.Equal(t, models.StatusPlanning, updated.Status)

	_, err = store.Update(ctx, "missing", in)
	assert.ErrorIs(t, err, projects.ErrProjectNotFound)

	removed, err := store.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Переименован", removed.Title)

	_, err = store.Get(ctx, p.ID)
	assert.ErrorIs(t, err, projects.ErrProjectNotFound)
}

func TestChangeStatusByRole(t *testing.T) {
	env := testutil.New(t)
	store := projects.NewStore(env.DB)
	ctx := context.Background()

	admin, err := env.Registry.Get(ctx, "1")
	require.NoError(t, err)
	john, err := env.Registry.Get(ctx, "2")
	require.NoError(t, err)
	jane, err := env.Registry.Get(ctx, "3")
	require.NoError(t, err)

	p, err := store.Create(ctx, weddingInput())
	require.NoError(t, err)

	_, err = store.ChangeStatus(ctx, *jane, p.ID, models.StatusReview)
	assert.ErrorIs(t, err, projects.ErrStatusChange)

	p, err = store.ChangeStatus(ctx, *john, p.ID, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, p.Status)

	_, err = store.ChangeStatus(ctx, *john, p.ID, models.StatusReview)
	assert.ErrorIs(t, err, projects.ErrStatusChange)

	p, err = store.ChangeStatus(ctx, *jane, p.ID, models.StatusReview)
	require.NoError(t, err)

	_, err = store.ChangeStatus(ctx, *admin, p.ID, models.StatusReview)
	assert.ErrorIs(t, err, projects.ErrStatusChange, "same status")

	p, err = store.ChangeStatus(ctx, *admin, p.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, p.Status)

	_, err = store.ChangeStatus(ctx, *admin, p.ID, "archived")
	assert.ErrorIs(t, err, projects.ErrValidation)
}

func TestAttachFile(t *testing.T) {
	env := testutil.New(t)
	store := projects.NewStore(env.DB)
	ctx := context.Background()

	p, err := store.Create(ctx, weddingInput())
	require.NoError(t, err)

	_, err = store.AttachFile(ctx, p.ID, "IMG_0001.jpg", "image/jpeg")
	require.NoError(t, err)
	p, err = store.AttachFile(ctx, p.ID, "layout.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, p.PhotosCount)
	assert.Equal(t, 1, p.DesignsCount)

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"IMG_0001.jpg", "layout.pdf"}, got.Files)

	_, err = store.AttachFile(ctx, "missing", "x.jpg", "image/jpeg")
	assert.ErrorIs(t, err, projects.ErrProjectNotFound)
}

func TestUnassign(t *testing.T) {
	env := testutil.New(t)
	store := projects.NewStore(env.DB)
	ctx := context.Background()

	p, err := store.Create(ctx, weddingInput())
	require.NoError(t, err)

	require.NoError(t, store.Unassign(ctx, "2"))

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PhotographerID)
	assert.Equal(t, "3", got.DesignerID)
	assert.Equal(t, "1", got.ManagerID)
}
