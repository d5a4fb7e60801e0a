package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/site/contents/dto"
	"itqan_backend/internals/features/site/contents/service"
	"itqan_backend/internals/testutil"
)

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func TestCreateGeneratesUniqueSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	now := time.Now().UTC()

	req := dto.CreateContentRequest{ContentType: constants.ContentArticle, Title: "Adab Membaca Quran", Body: "<p>isi</p><script>x()</script>"}
	a, err := service.Create(ctx, db, admin.ID, req, "", now)
	require.NoError(t, err)
	assert.Equal(t, "adab-membaca-quran", a.Slug)
	assert.NotContains(t, a.Body, "<script>")
	assert.Nil(t, a.PublishedAt)

	b, err := service.Create(ctx, db, admin.ID, req, "", now)
	require.NoError(t, err)
	assert.Equal(t, "adab-membaca-quran-2", b.Slug)

	// judul sama tidak dihitung sebagai perubahan
	same := "Adab Membaca Quran"
	got, err := service.Update(ctx, db, admin.ID, a.ID, dto.UpdateContentRequest{Title: &same}, "", now)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	title := "Adab Tilawah"
	got, err = service.Update(ctx, db, admin.ID, b.ID, dto.UpdateContentRequest{Title: &title}, "", now)
	require.NoError(t, err)
	assert.Equal(t, "adab-tilawah", got.Slug)

	assert.NoError(t, service.Delete(ctx, db, admin.ID, b.ID, ""))
	assert.Equal(t, fiber.StatusNotFound, statusOf(service.Delete(ctx, db, admin.ID, b.ID, "")))
}

func TestPublishedVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	now := time.Now().UTC()

	draft, err := service.Create(ctx, db, admin.ID, dto.CreateContentRequest{
		ContentType: constants.ContentSermon, Title: "Khutbah Jumat", Body: "isi", Tags: []string{"jumat", " jumat ", ""},
	}, "", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"jumat"}, []string(draft.Tags))

	_, err = service.GetPublishedBySlug(ctx, db, draft.Slug)
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))

	pub := true
	got, err := service.Update(ctx, db, admin.ID, draft.ID, dto.UpdateContentRequest{IsPublished: &pub}, "", now)
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)

	for i := 1; i <= 2; i++ {
		m, err := service.GetPublishedBySlug(ctx, db, draft.Slug)
		require.NoError(t, err)
		assert.EqualValues(t, i, m.ViewsCount)
	}

	rows, total, err := service.ListPublished(ctx, db, constants.ContentSermon, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rows, 1)

	_, total, err = service.ListPublished(ctx, db, "", "jumat", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = service.ListPublished(ctx, db, constants.ContentArticle, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	_, _, err = service.ListPublished(ctx, db, "podcast", "", 0, 10)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	inactive := false
	_, err = service.Update(ctx, db, admin.ID, draft.ID, dto.UpdateContentRequest{IsActive: &inactive}, "", now)
	require.NoError(t, err)
	_, err = service.GetPublishedBySlug(ctx, db, draft.Slug)
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))
}

func TestSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	now := time.Now().UTC()

	for _, r := range []dto.CreateContentRequest{
		{ContentType: constants.ContentArticle, Title: "Tajweed basics", Body: "x", IsPublished: true},
		{ContentType: constants.ContentLesson, Title: "Lesson one", Excerpt: "about tajweed rules", Body: "x", IsPublished: true},
		{ContentType: constants.ContentBook, Title: "Tajweed draft", Body: "x"},
	} {
		_, err := service.Create(ctx, db, admin.ID, r, "", now)
		require.NoError(t, err)
	}

	res := service.Search(ctx, db, "TAJWEED", nil)
	assert.Len(t, res[constants.ContentArticle], 1)
	assert.Len(t, res[constants.ContentLesson], 1)
	assert.Empty(t, res[constants.ContentBook])
	assert.Contains(t, res, constants.ContentSermon)

	res = service.Search(ctx, db, "tajweed", []string{constants.ContentLesson, "unknown"})
	assert.Empty(t, res[constants.ContentArticle])
	assert.Len(t, res[constants.ContentLesson], 1)
	assert.NotContains(t, res, "unknown")

	res = service.Search(ctx, db, "t", nil)
	for _, typ := range constants.ContentTypes {
		assert.Empty(t, res[typ])
	}
}
