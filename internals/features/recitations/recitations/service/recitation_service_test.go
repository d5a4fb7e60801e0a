package service_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/recitations/recitations/dto"
	"itqan_backend/internals/features/recitations/recitations/model"
	recService "itqan_backend/internals/features/recitations/recitations/service"
	userModel "itqan_backend/internals/features/users/users/model"
	"itqan_backend/internals/testutil"
)

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func viewer(u userModel.UserModel) recService.Viewer {
	return recService.Viewer{ID: u.ID, Role: u.Role}
}

func TestCreateRecitation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)

	_, err := recService.Create(ctx, db, student.ID, dto.CreateRecitationRequest{})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	rec, err := recService.Create(ctx, db, student.ID, dto.CreateRecitationRequest{AudioURL: "/uploads/audios/a.webm"})
	require.NoError(t, err)
	assert.Equal(t, constants.RecitationPending, rec.Status)
	assert.Equal(t, 1, rec.SurahNumber)
	assert.Equal(t, 7, rec.AyahTo)
	assert.Equal(t, model.DefaultQiraah, rec.Qiraah)

	_, err = recService.Create(ctx, db, student.ID, dto.CreateRecitationRequest{AudioURL: "/uploads/audios/b.webm"})
	assert.Equal(t, fiber.StatusConflict, statusOf(err))

	var notes int64
	require.NoError(t, db.Table("notifications").Where("user_id IN ?", []uuid.UUID{student.ID, admin.ID}).Count(&notes).Error)
	assert.EqualValues(t, 2, notes)
}

func TestListScopesByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	s1 := testutil.CreateUser(t, db, constants.RoleStudent)
	s2 := testutil.CreateUser(t, db, constants.RoleStudent)
	r1 := testutil.CreateUser(t, db, constants.RoleReader)
	r2 := testutil.CreateUser(t, db, constants.RoleReader)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)

	a, err := recService.Create(ctx, db, s1.ID, dto.CreateRecitationRequest{AudioURL: "/a"})
	require.NoError(t, err)
	b, err := recService.Create(ctx, db, s2.ID, dto.CreateRecitationRequest{AudioURL: "/b"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.RecitationModel{}).Where("id = ?", b.ID).
		Updates(map[string]any{"assigned_reader_id": r2.ID, "status": constants.RecitationInReview}).Error)

	items, total, err := recService.List(ctx, db, viewer(s1), "", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, s1.Name, items[0].StudentName)

	// r1 hanya melihat pending tanpa reader
	items, _, err = recService.List(ctx, db, viewer(r1), "", 0, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	items, _, err = recService.List(ctx, db, viewer(r2), "", 0, 20)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, total, err = recService.List(ctx, db, viewer(admin), constants.RecitationInReview, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, err = recService.Get(ctx, db, viewer(s1), b.ID)
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))
	_, err = recService.Get(ctx, db, viewer(r1), b.ID)
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))
	_, err = recService.Get(ctx, db, viewer(admin), uuid.New())
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))

	detail, err := recService.Get(ctx, db, viewer(r2), b.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Recitation.ReaderName)
	assert.Equal(t, r2.Name, *detail.Recitation.ReaderName)
	assert.Nil(t, detail.Review)
}

func TestSubmitReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	testutil.UseMailRecorder(t)
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	other := testutil.CreateUser(t, db, constants.RoleReader)
	require.NoError(t, db.Create(&userModel.ReaderProfileModel{ID: uuid.New(), UserID: reader.ID}).Error)

	rec, err := recService.Create(ctx, db, student.ID, dto.CreateRecitationRequest{AudioURL: "/a"})
	require.NoError(t, err)

	score := 80
	review, err := recService.SubmitReview(ctx, db, reader.ID, rec.ID, dto.ReviewRequest{
		Verdict: constants.RecitationNeedsSession, OverallScore: &score, Feedback: "  مد  ", Tags: []string{"madd"},
	})
	require.NoError(t, err)
	assert.Equal(t, reader.ID, review.ReaderID)
	require.NotNil(t, review.DetailedFeedback)
	assert.Equal(t, "مد", *review.DetailedFeedback)

	var got model.RecitationModel
	require.NoError(t, db.First(&got, "id = ?", rec.ID).Error)
	assert.Equal(t, constants.RecitationNeedsSession, got.Status)
	require.NotNil(t, got.AssignedReaderID)
	assert.Equal(t, reader.ID, *got.AssignedReaderID)
	assert.NotNil(t, got.ReviewedAt)

	_, err = recService.SubmitReview(ctx, db, other.ID, rec.ID, dto.ReviewRequest{Verdict: constants.RecitationMastered})
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	// review kedua meng-update, bukan menambah baris
	_, err = recService.SubmitReview(ctx, db, reader.ID, rec.ID, dto.ReviewRequest{Verdict: constants.RecitationMastered})
	require.NoError(t, err)
	var reviews int64
	require.NoError(t, db.Model(&model.ReviewModel{}).Where("recitation_id = ?", rec.ID).Count(&reviews).Error)
	assert.EqualValues(t, 1, reviews)

	var profile userModel.ReaderProfileModel
	require.NoError(t, db.First(&profile, "user_id = ?", reader.ID).Error)
	assert.Equal(t, 1, profile.TotalReviews)

	latest, err := recService.MyLatest(ctx, db, student.ID)
	require.NoError(t, err)
	require.NotNil(t, latest.Recitation)
	assert.Equal(t, constants.RecitationMastered, latest.Recitation.Status)
	require.NotNil(t, latest.Review)
	assert.Equal(t, reader.Name, latest.Review.ReviewerName)
	assert.False(t, latest.HasCertData)

	_, err = recService.SubmitReview(ctx, db, reader.ID, uuid.New(), dto.ReviewRequest{Verdict: constants.RecitationMastered})
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))
}

func TestDeleteRecitation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	stranger := testutil.CreateUser(t, db, constants.RoleStudent)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	reader := testutil.CreateUser(t, db, constants.RoleReader)

	rec, err := recService.Create(ctx, db, student.ID, dto.CreateRecitationRequest{AudioURL: "/a"})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, statusOf(recService.Delete(ctx, db, viewer(stranger), rec.ID)))
	assert.Equal(t, fiber.StatusForbidden, statusOf(recService.Delete(ctx, db, viewer(reader), rec.ID)))
	require.NoError(t, recService.Delete(ctx, db, viewer(student), rec.ID))
	assert.Equal(t, fiber.StatusNotFound, statusOf(recService.Delete(ctx, db, viewer(student), rec.ID)))

	rec, err = recService.Create(ctx, db, student.ID, dto.CreateRecitationRequest{AudioURL: "/b"})
	require.NoError(t, err)
	_, err = recService.SubmitReview(ctx, db, reader.ID, rec.ID, dto.ReviewRequest{Verdict: constants.RecitationMastered})
	require.NoError(t, err)

	// sudah direview: student tidak boleh hapus, admin boleh (review ikut terhapus)
	assert.Equal(t, fiber.StatusForbidden, statusOf(recService.Delete(ctx, db, viewer(student), rec.ID)))
	require.NoError(t, recService.Delete(ctx, db, viewer(admin), rec.ID))
	var reviews int64
	require.NoError(t, db.Model(&model.ReviewModel{}).Where("recitation_id = ?", rec.ID).Count(&reviews).Error)
	assert.Zero(t, reviews)
}
