package service_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/messaging/conversations/dto"
	"itqan_backend/internals/features/messaging/conversations/service"
	"itqan_backend/internals/testutil"
)

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func TestStartIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	reader := testutil.CreateUser(t, db, constants.RoleReader)

	sv := service.Viewer{ID: student.ID, Role: constants.RoleStudent}
	rv := service.Viewer{ID: reader.ID, Role: constants.RoleReader}

	c1, created, err := service.Start(ctx, db, sv, dto.StartConversationRequest{ReaderID: reader.ID.String()})
	require.NoError(t, err)
	assert.True(t, created)

	c2, created, err := service.Start(ctx, db, rv, dto.StartConversationRequest{StudentID: student.ID.String()})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, c1.ID, c2.ID)

	// reader_id harus benar-benar reader
	_, _, err = service.Start(ctx, db, sv, dto.StartConversationRequest{ReaderID: student.ID.String()})
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))

	_, _, err = service.Start(ctx, db, sv, dto.StartConversationRequest{})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	av := service.Viewer{ID: admin.ID, Role: constants.RoleAdmin}
	_, _, err = service.Start(ctx, db, av, dto.StartConversationRequest{UserID: reader.ID.String(), UserRole: "guest"})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	ac, created, err := service.Start(ctx, db, av, dto.StartConversationRequest{UserID: reader.ID.String(), UserRole: constants.RoleReader})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, c1.ID, ac.ID)
}

func TestSendAndUnread(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	outsider := testutil.CreateUser(t, db, constants.RoleStudent)

	sv := service.Viewer{ID: student.ID, Role: constants.RoleStudent}
	rv := service.Viewer{ID: reader.ID, Role: constants.RoleReader}
	ov := service.Viewer{ID: outsider.ID, Role: constants.RoleStudent}

	c, _, err := service.Start(ctx, db, sv, dto.StartConversationRequest{ReaderID: reader.ID.String()})
	require.NoError(t, err)

	_, err = service.Send(ctx, db, sv, c.ID, dto.SendMessageRequest{Content: "  "})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	_, err = service.Send(ctx, db, ov, c.ID, dto.SendMessageRequest{Content: "hi"})
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	m1, err := service.Send(ctx, db, sv, c.ID, dto.SendMessageRequest{Content: "السلام عليكم"})
	require.NoError(t, err)
	assert.Equal(t, reader.ID, m1.RecipientID)
	_, err = service.Send(ctx, db, sv, c.ID, dto.SendMessageRequest{Content: "هل أنت متاح؟"})
	require.NoError(t, err)

	counts, err := service.UnreadCounts(ctx, db, rv)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Messages)

	list, err := service.List(ctx, db, rv)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].UnreadCount)

	msgs, err := service.Messages(ctx, db, rv, c.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "السلام عليكم", msgs[0].Content)

	counts, err = service.UnreadCounts(ctx, db, rv)
	require.NoError(t, err)
	assert.EqualValues(t, 0, counts.Messages)

	// edit hanya pengirim
	_, err = service.EditMessage(ctx, db, rv, c.ID, m1.ID, dto.EditMessageRequest{Content: "x"})
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))
	edited, err := service.EditMessage(ctx, db, sv, c.ID, m1.ID, dto.EditMessageRequest{Content: "وعليكم"})
	require.NoError(t, err)
	assert.Equal(t, "وعليكم", edited.Content)

	assert.Equal(t, fiber.StatusForbidden, statusOf(service.DeleteMessage(ctx, db, rv, c.ID, m1.ID)))
	assert.NoError(t, service.DeleteMessage(ctx, db, sv, c.ID, m1.ID))

	assert.Equal(t, fiber.StatusForbidden, statusOf(service.Delete(ctx, db, ov, c.ID)))
	assert.NoError(t, service.Delete(ctx, db, rv, c.ID))
	_, err = service.Messages(ctx, db, sv, c.ID)
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))
}
