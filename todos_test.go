package main

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTodo(t *testing.T, r http.Handler, tok, title, description string) string {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/api/todos",
		jsonBody(t, gin.H{"title": title, "description": description}), tok, "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id, _ := decodeResponse(t, rec).Data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func listTodos(t *testing.T, r http.Handler, tok, query string) []any {
	t.Helper()
	rec := performRequest(r, http.MethodGet, "/api/todos"+query, nil, tok, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	todos, _ := decodeResponse(t, rec).Data["todos"].([]any)
	return todos
}

func TestTodoCRUD(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	tok := loginUser(t, r, "alice@example.com", "secret123")

	id := createTodo(t, r, tok, "Buy milk", "two liters")

	rec := performRequest(r, http.MethodGet, "/api/todos/"+id, nil, tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	todo := decodeResponse(t, rec).Data["todo"].(map[string]any)
	assert.Equal(t, "Buy milk", todo["title"])
	assert.Equal(t, false, todo["isFinished"])

	rec = performRequest(r, http.MethodPut, "/api/todos/"+id,
		jsonBody(t, gin.H{"title": "Buy milk", "description": "three liters", "isFinished": true}), tok, "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = performRequest(r, http.MethodGet, "/api/todos/"+id, nil, tok, "")
	todo = decodeResponse(t, rec).Data["todo"].(map[string]any)
	assert.Equal(t, "three liters", todo["description"])
	assert.Equal(t, true, todo["isFinished"])

	rec = performRequest(r, http.MethodDelete, "/api/todos/"+id, nil, tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, http.MethodGet, "/api/todos/"+id, nil, tok, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTodoValidation(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	tok := loginUser(t, r, "alice@example.com", "secret123")

	rec := performRequest(r, http.MethodPost, "/api/todos",
		jsonBody(t, gin.H{"title": "", "description": "x"}), tok, "application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodPost, "/api/todos",
		jsonBody(t, gin.H{"title": "x"}), tok, "application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// update without isFinished is rejected
	id := createTodo(t, r, tok, "a", "b")
	rec = performRequest(r, http.MethodPut, "/api/todos/"+id,
		jsonBody(t, gin.H{"title": "a", "description": "b"}), tok, "application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoSearch(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	tok := loginUser(t, r, "alice@example.com", "secret123")

	createTodo(t, r, tok, "Groceries", "buy apples and bread")
	createTodo(t, r, tok, "Homework", "finish the math set")

	assert.Len(t, listTodos(t, r, tok, ""), 2)
	assert.Len(t, listTodos(t, r, tok, "?search=APPLES"), 1)
	assert.Len(t, listTodos(t, r, tok, "?search=homework"), 1)
	assert.Len(t, listTodos(t, r, tok, "?search=nothing-here"), 0)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	registerUser(t, r, "Bob", "bob@example.com", "secret456")
	alice := loginUser(t, r, "alice@example.com", "secret123")
	bob := loginUser(t, r, "bob@example.com", "secret456")

	id := createTodo(t, r, alice, "Alice's todo", "private")

	// Bob cannot see, update or delete Alice's todo
	rec := performRequest(r, http.MethodGet, "/api/todos/"+id, nil, bob, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = performRequest(r, http.MethodPut, "/api/todos/"+id,
		jsonBody(t, gin.H{"title": "hijack", "description": "x", "isFinished": false}), bob, "application/json")
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = performRequest(r, http.MethodDelete, "/api/todos/"+id, nil, bob, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Len(t, listTodos(t, r, bob, ""), 0)
	assert.Len(t, listTodos(t, r, alice, ""), 1)
}

func coverForm(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("cover", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestTodoCoverUploadAndServe(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	tok := loginUser(t, r, "alice@example.com", "secret123")
	id := createTodo(t, r, tok, "With cover", "desc")

	body, ct := coverForm(t, "cover.png", pngBytes(t))
	rec := performRequest(r, http.MethodPost, "/api/todos/"+id+"/cover", body, tok, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cover, _ := decodeResponse(t, rec).Data["cover"].(string)
	require.NotEmpty(t, cover)
	assert.True(t, coverExists(cover))

	rec = performRequest(r, http.MethodGet, "/api/todos/"+id+"/cover", nil, tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, rec.Body.Len())
}

func TestTodoCoverRejectsNonImage(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	tok := loginUser(t, r, "alice@example.com", "secret123")
	id := createTodo(t, r, tok, "No cover", "desc")

	body, ct := coverForm(t, "notes.txt", []byte("plain text, not an image"))
	rec := performRequest(r, http.MethodPost, "/api/todos/"+id+"/cover", body, tok, ct)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodGet, "/api/todos/"+id+"/cover", nil, tok, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTodoCoverMissingFile(t *testing.T) {
	r, _, _ := setupTestApp(t)
	registerUser(t, r, "Alice", "alice@example.com", "secret123")
	tok := loginUser(t, r, "alice@example.com", "secret123")
	id := createTodo(t, r, tok, "x", "y")

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.Close())
	rec := performRequest(r, http.MethodPost, "/api/todos/"+id+"/cover", buf, tok, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
