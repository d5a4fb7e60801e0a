package service_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/site/comments/dto"
	"itqan_backend/internals/features/site/comments/service"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/testutil"
)

func fiberErr(t *testing.T, err error) *fiber.Error {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected fiber error, got %v", err)
	return fe
}

func validReq(contentID string) dto.CreateCommentRequest {
	return dto.CreateCommentRequest{
		ContentID:   contentID,
		ContentType: constants.ContentArticle,
		AuthorName:  "Abdullah",
		AuthorEmail: "  Abdullah@Example.com ",
		CommentText: "جزاكم الله خيرا على هذا المقال",
	}
}

func TestSubmitValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	cid := uuid.NewString()

	cases := []struct {
		name   string
		mutate func(*dto.CreateCommentRequest)
		msg    string
	}{
		{"missing name", func(r *dto.CreateCommentRequest) { r.AuthorName = " " }, helper.MsgAllFieldsRequired},
		{"bad email", func(r *dto.CreateCommentRequest) { r.AuthorEmail = "nope" }, service.MsgInvalidEmail},
		{"too short", func(r *dto.CreateCommentRequest) { r.CommentText = "قصير" }, service.MsgCommentLength},
		{"too long", func(r *dto.CreateCommentRequest) { r.CommentText = strings.Repeat("ب", 5001) }, service.MsgCommentLength},
		{"bad type", func(r *dto.CreateCommentRequest) { r.ContentType = "video" }, helper.MsgInvalidData},
		{"bad id", func(r *dto.CreateCommentRequest) { r.ContentID = "123" }, helper.MsgInvalidID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validReq(cid)
			tc.mutate(&r)
			_, err := service.Submit(ctx, db, r, "")
			fe := fiberErr(t, err)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
			assert.Equal(t, tc.msg, fe.Message)
		})
	}
}

func TestModerationFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	cid := uuid.NewString()

	c1, err := service.Submit(ctx, db, validReq(cid), "203.0.113.5")
	require.NoError(t, err)
	c2, err := service.Submit(ctx, db, validReq(cid), "")
	require.NoError(t, err)

	// belum disetujui -> belum tampil
	list, err := service.ListApproved(ctx, db, cid, constants.ContentArticle)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = service.ListApproved(ctx, db, "", constants.ContentArticle)
	assert.Equal(t, service.MsgContentParamsRequired, fiberErr(t, err).Message)

	pending, total, err := service.AdminList(ctx, db, service.StatusPending, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, pending, 2)
	assert.Equal(t, "abdullah@example.com", pending[0].AuthorEmail)

	_, _, err = service.AdminList(ctx, db, "spam", 0, 20)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr(t, err).Code)

	now := time.Now().UTC()
	_, err = service.Moderate(ctx, db, admin.ID, dto.ModerateRequest{ID: c1.ID.String(), Action: "delete"}, "", now)
	assert.Equal(t, service.MsgInvalidAction, fiberErr(t, err).Message)

	_, err = service.Moderate(ctx, db, admin.ID, dto.ModerateRequest{ID: uuid.NewString(), Action: service.ActionApprove}, "", now)
	assert.Equal(t, fiber.StatusNotFound, fiberErr(t, err).Code)

	approved, err := service.Moderate(ctx, db, admin.ID, dto.ModerateRequest{ID: c1.ID.String(), Action: service.ActionApprove}, "", now)
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.True(t, approved.IsApproved)

	rejected, err := service.Moderate(ctx, db, admin.ID, dto.ModerateRequest{ID: c2.ID.String(), Action: service.ActionReject}, "", now)
	require.NoError(t, err)
	assert.Nil(t, rejected)

	list, err = service.ListApproved(ctx, db, cid, constants.ContentArticle)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c1.ID, list[0].ID)

	_, total, err = service.AdminList(ctx, db, "", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
