package controller_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	uploadRoute "itqan_backend/internals/features/utils/uploads/route"
	"itqan_backend/internals/features/utils/uploads/service"
	authMiddleware "itqan_backend/internals/middlewares/auth"
	"itqan_backend/internals/testutil"
)

func multipartBody(t *testing.T, filename string, content []byte, folder string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	if folder != "" {
		require.NoError(t, w.WriteField("folder", folder))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	root := t.TempDir()
	app := testutil.NewApp()
	uploadRoute.UploadRoutes(app.Group("/api", authMiddleware.AuthMiddleware(db)), root)
	token := testutil.Token(t, testutil.CreateUser(t, db, constants.RoleStudent))

	send := func(filename, folder, tok string) (int, testutil.Envelope) {
		body, ct := multipartBody(t, filename, []byte("fake-bytes"), folder)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		return testutil.Do(t, app, req)
	}

	code, _ := send("a.mp3", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := send("tilawah.mp3", "", token)
	require.Equal(t, http.StatusCreated, code)
	var res service.Result
	testutil.Decode(t, env, &res)
	assert.Equal(t, constants.FileKindAudio, res.Kind)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/audios/"), res.URL)

	rel := strings.TrimPrefix(res.URL, "/uploads/")
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "fake-bytes", string(data))

	// folder dengan ".." dikembalikan ke default
	code, env = send("cover.png", "../etc", token)
	require.Equal(t, http.StatusCreated, code)
	testutil.Decode(t, env, &res)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/images/"), res.URL)

	code, env = send("notes.txt", "", token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.MsgUnsupportedType, env.Message)
}
