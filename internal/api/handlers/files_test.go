package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/alex/dev-tools-portal/internal/api/handlers"
	"github.com/alex/dev-tools-portal/internal/service"
	"github.com/alex/dev-tools-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type multipartFile struct {
	name        string
	contentType string
	data        []byte
}

func postMultipart(t *testing.T, url, accessToken string, files []multipartFile) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestFileAPI_RequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postMultipart(t, ts.APIURL("/files/upload-files"), "", []multipartFile{
		{name: "a.png", contentType: "image/png", data: []byte("png")},
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

func TestFileAPI_UploadFiles(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, pass := testutil.NewUserBuilder().WithEmail("admin@example.com").Build(t, ts.DB.DB)
	pair := testutil.SignIn(t, ts, "admin@example.com", pass)

	resp := postMultipart(t, ts.APIURL("/files/upload-files"), pair.AccessToken, []multipartFile{
		{name: "logo.png", contentType: "image/png", data: []byte("png-bytes")},
		{name: "deck.pdf", contentType: "application/pdf", data: []byte("pdf-bytes")},
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var files []service.PublicFile
	testutil.AssertJSONResponse(t, resp, &files)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, f.URL, ts.Config.CDNBaseURL)
	}

	// The bytes actually reached the store
	require.Len(t, ts.Store.Saved, 2)
	assert.Equal(t, []byte("png-bytes"), ts.Store.Saved[0].Data)
	assert.Equal(t, "image/png", ts.Store.Saved[0].ContentType)
}

func TestFileAPI_UploadFiles_Rejections(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, pass := testutil.NewUserBuilder().WithEmail("admin@example.com").Build(t, ts.DB.DB)
	pair := testutil.SignIn(t, ts, "admin@example.com", pass)

	t.Run("disallowed type", func(t *testing.T) {
		resp := postMultipart(t, ts.APIURL("/files/upload-files"), pair.AccessToken, []multipartFile{
			{name: "tool.zip", contentType: "application/zip", data: []byte("zip")},
		})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "application/zip")
	})

	t.Run("too many files", func(t *testing.T) {
		files := make([]multipartFile, 11)
		for i := range files {
			files[i] = multipartFile{name: "f.png", contentType: "image/png", data: []byte("x")}
		}
		resp := postMultipart(t, ts.APIURL("/files/upload-files"), pair.AccessToken, files)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "At most 10 files")
	})

	t.Run("no files field", func(t *testing.T) {
		resp := postMultipart(t, ts.APIURL("/files/upload-files"), pair.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestFileAPI_ListInventory(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, pass := testutil.NewUserBuilder().WithEmail("admin@example.com").Build(t, ts.DB.DB)
	pair := testutil.SignIn(t, ts, "admin@example.com", pass)

	t.Run("requires a token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/files/"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("lists recorded document uploads", func(t *testing.T) {
		resp := postMultipart(t, ts.APIURL("/files/upload-documents"), pair.AccessToken, []multipartFile{
			{name: "notes.pdf", contentType: "application/pdf", data: []byte("pdf-bytes")},
		})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		req, err := http.NewRequest(http.MethodGet, ts.APIURL("/files/"), nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var records []handlers.FileRecordResponse
		testutil.AssertJSONResponse(t, resp, &records)
		require.Len(t, records, 1)
		assert.Equal(t, "notes.pdf", records[0].FileName)
		assert.Equal(t, "application/pdf", records[0].MimeType)
		assert.Equal(t, int64(len("pdf-bytes")), records[0].FileSize)
		assert.NotEmpty(t, records[0].ID)
		assert.NotEmpty(t, records[0].CreatedAt)
	})
}

func TestFileAPI_UploadDocuments(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, pass := testutil.NewUserBuilder().WithEmail("admin@example.com").Build(t, ts.DB.DB)
	pair := testutil.SignIn(t, ts, "admin@example.com", pass)

	resp := postMultipart(t, ts.APIURL("/files/upload-documents"), pair.AccessToken, []multipartFile{
		{name: "contract.pdf", contentType: "application/pdf", data: []byte("pdf-bytes")},
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var files []service.DocumentFile
	testutil.AssertJSONResponse(t, resp, &files)
	require.Len(t, files, 1)
	assert.Equal(t, "contract.pdf", files[0].FileName)
	assert.Equal(t, "application/pdf", files[0].MimeType)
	assert.Equal(t, int64(len("pdf-bytes")), files[0].FileSize)

	t.Run("document ceiling is five", func(t *testing.T) {
		files := make([]multipartFile, 6)
		for i := range files {
			files[i] = multipartFile{name: "d.pdf", contentType: "application/pdf", data: []byte("x")}
		}
		resp := postMultipart(t, ts.APIURL("/files/upload-documents"), pair.AccessToken, files)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "At most 5 files")
	})
}
