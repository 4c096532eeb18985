package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	return file, header
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1<<20)

	file, header := multipartUpload(t, "Lecture Notes.PDF", []byte("pdf bytes"))
	defer file.Close()

	doc, err := store.Save(file, header)
	require.NoError(t, err)

	assert.Equal(t, "Lecture Notes.PDF", doc.OriginalName)
	assert.Equal(t, ".pdf", doc.Ext)
	assert.Equal(t, int64(9), doc.Size)
	assert.Equal(t, dir, filepath.Dir(doc.Path))

	written, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), written)
}

func TestStoreSaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1<<20)

	file1, header1 := multipartUpload(t, "same.txt", []byte("one"))
	defer file1.Close()
	file2, header2 := multipartUpload(t, "same.txt", []byte("two"))
	defer file2.Close()

	doc1, err := store.Save(file1, header1)
	require.NoError(t, err)
	doc2, err := store.Save(file2, header2)
	require.NoError(t, err)

	assert.NotEqual(t, doc1.Path, doc2.Path)
}

func TestStoreSaveEmptyFile(t *testing.T) {
	store := NewStore(t.TempDir(), 1<<20)

	file, header := multipartUpload(t, "empty.txt", nil)
	defer file.Close()

	_, err := store.Save(file, header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestStoreSaveOversized(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 10)

	file, header := multipartUpload(t, "big.txt", bytes.Repeat([]byte("x"), 100))
	defer file.Close()

	_, err := store.Save(file, header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum size")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "oversized upload must be rejected before storage")
}

func TestStoreRemoveIdempotent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1<<20)

	file, header := multipartUpload(t, "doc.txt", []byte("content"))
	defer file.Close()

	doc, err := store.Save(file, header)
	require.NoError(t, err)

	require.NoError(t, store.Remove(doc.Path))
	assert.NoFileExists(t, doc.Path)

	// Second removal of an already-deleted file is a no-op.
	require.NoError(t, store.Remove(doc.Path))
	require.NoError(t, store.Remove(""))
}
