package service

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	helper "itqan_backend/internals/helpers"
)

func header(name, ct string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if ct != "" {
		h.Set("Content-Type", ct)
	}
	return &multipart.FileHeader{Filename: name, Header: h, Size: size}
}

func TestCheck(t *testing.T) {
	kind, err := Check(header("tilawah.webm", "audio/webm", 1024))
	require.NoError(t, err)
	assert.Equal(t, constants.FileKindAudio, kind)

	kind, err = Check(header("cover.png", "", 1024))
	require.NoError(t, err)
	assert.Equal(t, constants.FileKindImage, kind)

	kind, err = Check(header("rec.m4a", "application/octet-stream", 1024))
	require.NoError(t, err)
	assert.Equal(t, constants.FileKindAudio, kind)

	cases := []struct {
		fh  *multipart.FileHeader
		msg string
	}{
		{nil, MsgFileRequired},
		{header("doc.pdf", "application/pdf", 10), MsgUnsupportedType},
		{header("big.mp3", "audio/mpeg", helper.MaxAudioSize+1), MsgAudioTooLarge},
		{header("big.jpg", "image/jpeg", helper.MaxImageSize+1), MsgImageTooLarge},
	}
	for _, tc := range cases {
		_, err := Check(tc.fh)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		assert.Equal(t, tc.msg, fe.Message)
	}
}
