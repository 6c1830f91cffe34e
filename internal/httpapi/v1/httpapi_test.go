package v1

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type idResp struct {
	ID string `json:"id"`
}

func setup(t *testing.T, opts Options) (http.Handler, *credential.Issuer) {
	t.Helper()
	issuer, err := credential.NewIssuer("test-secret", 0)
	require.NoError(t, err)
	srv := New(memory.New(), credential.NewHasher(bcrypt.MinCost), issuer, opts, testLogger())
	return srv.Handler(), issuer
}

func defaultSetup(t *testing.T) http.Handler {
	h, _ := setup(t, Options{EmptyListNotFound: true})
	return h
}

func do(t *testing.T, h http.Handler, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func authorBody() map[string]any {
	return map[string]any{"first_name": "Alice", "last_name": "Smith", "email": "alice@x.com", "nationality": "British"}
}

func bookBody(authorID string) map[string]any {
	return map[string]any{
		"title":       "Introduction to Data Science",
		"description": "An introductory book on data science principles.",
		"location":    "Shelf A1",
		"label":       "Data Science Basics",
		"type":        "datascience",
		"publishDate": "2021-05-15",
		"publisher":   "Springer",
		"language":    "English",
		"link":        "https://example.com/data-science",
		"author_id":   authorID,
	}
}

func adherentBody(login string) map[string]any {
	return map[string]any{
		"first_name":        "John",
		"last_name":         "Doe",
		"membership_number": "M001",
		"login":             login,
		"password":          "secret",
		"role":              "student",
	}
}

func create(t *testing.T, h http.Handler, path string, body any) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[idResp](t, rec).ID
}

func TestAuthors_CRUD(t *testing.T) {
	h := defaultSetup(t)
	id := create(t, h, "/authors/", authorBody())

	rec := do(t, h, http.MethodGet, "/authors/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Alice", got["first_name"])

	// identical payload still answers with the stored document
	rec = do(t, h, http.MethodPut, "/authors/"+id, authorBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, got, decode[map[string]any](t, rec))

	changed := authorBody()
	changed["nationality"] = "Irish"
	rec = do(t, h, http.MethodPut, "/authors/"+id, changed)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Irish", decode[map[string]any](t, rec)["nationality"])

	missing := ident.Encode(ident.New())
	rec = do(t, h, http.MethodPut, "/authors/"+missing, changed)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Author not found", decode[errResp](t, rec).Error)

	rec = do(t, h, http.MethodDelete, "/authors/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, "/authors/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/authors/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidIDs(t *testing.T) {
	h := defaultSetup(t)
	for _, p := range []string{"/authors/xyz", "/books/123", "/adherents/not-an-id/loans", "/loans/zzzzzzzzzzzzzzzzzzzzzzzz"} {
		rec := do(t, h, http.MethodGet, p, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, p)
		assert.Equal(t, "invalid_id", decode[errResp](t, rec).Code, p)
	}
}

func TestAuthors_ListFilterAndPagination(t *testing.T) {
	h := defaultSetup(t)
	for i := 0; i < 12; i++ {
		b := authorBody()
		b["last_name"] = fmt.Sprintf("Smith%02d", i)
		create(t, h, "/authors", b)
	}

	rec := do(t, h, http.MethodGet, "/authors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 10)

	rec = do(t, h, http.MethodGet, "/authors/?skip=10&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/authors?name=Smith03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 1)

	for _, q := range []string{"limit=0", "limit=101", "skip=-1", "limit=abc"} {
		rec = do(t, h, http.MethodGet, "/authors?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestEmptyListPolicy(t *testing.T) {
	h := defaultSetup(t)
	rec := do(t, h, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No books found", decode[errResp](t, rec).Error)

	lenient, _ := setup(t, Options{EmptyListNotFound: false})
	rec = do(t, lenient, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	authorID := create(t, lenient, "/authors", authorBody())
	rec = do(t, lenient, http.MethodGet, "/authors/"+authorID+"/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestBooks_FiltersAndTraversal(t *testing.T) {
	h := defaultSetup(t)
	authorID := create(t, h, "/authors", authorBody())
	bookID := create(t, h, "/books", bookBody(authorID))
	other := bookBody(ident.Encode(ident.New()))
	other["title"] = "Modern Web Development"
	other["type"] = "web"
	create(t, h, "/books", other)

	rec := do(t, h, http.MethodGet, "/books?title=data%20SCIENCE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]map[string]any](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, bookID, got[0]["id"])
	assert.Equal(t, authorID, got[0]["author_id"])

	rec = do(t, h, http.MethodGet, "/books?type=web&language=english", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/books?type=cooking", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodGet, "/books?author_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/books/"+bookID+"/author", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, authorID, decode[idResp](t, rec).ID)

	rec = do(t, h, http.MethodGet, "/authors/"+authorID+"/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 1)

	rec = do(t, h, http.MethodDelete, "/authors/"+authorID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/books/"+bookID+"/author", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No author found for this book", decode[errResp](t, rec).Error)
}

func TestBooks_BodyValidation(t *testing.T) {
	h := defaultSetup(t)
	authorID := ident.Encode(ident.New())

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	unknown := bookBody(authorID)
	unknown["isbn"] = "123"
	rec = do(t, h, http.MethodPost, "/books", unknown)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errResp{Error: "Invalid JSON body", Code: "invalid_json"}, decode[errResp](t, rec))

	badType := bookBody(authorID)
	badType["type"] = "cooking"
	rec = do(t, h, http.MethodPost, "/books", badType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e := decode[errResp](t, rec)
	assert.Equal(t, "validation_error", e.Code)
	assert.Equal(t, `invalid: unknown book type "cooking"`, e.Error)

	badDate := bookBody(authorID)
	badDate["publishDate"] = "2021-13-45"
	badDate["title"] = 42
	rec = do(t, h, http.MethodPost, "/books", badDate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e = decode[errResp](t, rec)
	assert.Equal(t, "invalid_json", e.Code)
	assert.NotContains(t, e.Error, "bookRequest")

	badDate["title"] = "Go"
	rec = do(t, h, http.MethodPost, "/books", badDate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e = decode[errResp](t, rec)
	assert.Equal(t, "validation_error", e.Code)
	assert.Contains(t, e.Error, "invalid date")

	missing := bookBody(authorID)
	delete(missing, "publisher")
	rec = do(t, h, http.MethodPost, "/books", missing)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode[errResp](t, rec).Code)

	rec = do(t, h, http.MethodPost, "/books", bookBody("abc"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_id", decode[errResp](t, rec).Code)

	noDesc := bookBody(authorID)
	delete(noDesc, "description")
	rec = do(t, h, http.MethodPost, "/books", noDesc)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, decode[map[string]any](t, rec)["description"])
}

func TestAdherents_PasswordNeverReturned(t *testing.T) {
	h := defaultSetup(t)
	rec := do(t, h, http.MethodPost, "/adherents", adherentBody("jdoe"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	id := decode[idResp](t, rec).ID

	for _, p := range []string{"/adherents/" + id, "/adherents", "/adherents?role=student"} {
		rec = do(t, h, http.MethodGet, p, nil)
		require.Equal(t, http.StatusOK, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), "password", p)
		assert.NotContains(t, rec.Body.String(), "$2a$", p)
	}

	update := adherentBody("jdoe")
	update["password"] = ""
	update["role"] = "librarian"
	rec = do(t, h, http.MethodPut, "/adherents/"+id, update)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(t, h, http.MethodGet, "/adherents?role=professor", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/adherents?role=janitor", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	noPassword := adherentBody("other")
	delete(noPassword, "password")
	rec = do(t, h, http.MethodPost, "/adherents", noPassword)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdherents_OverlongPasswordIsClientError(t *testing.T) {
	h := defaultSetup(t)
	long := adherentBody("jdoe")
	long["password"] = strings.Repeat("p", 73)
	rec := do(t, h, http.MethodPost, "/adherents", long)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode[errResp](t, rec).Code)

	rec = do(t, h, http.MethodPost, "/adherents", adherentBody("jdoe"))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[idResp](t, rec).ID
	rec = do(t, h, http.MethodPut, "/adherents/"+id, long)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/adherents/login", map[string]any{"login": "jdoe", "password": strings.Repeat("p", 100)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "auth_failed", decode[errResp](t, rec).Code)
}

func TestAdherents_LoginAndMe(t *testing.T) {
	h, issuer := setup(t, Options{EmptyListNotFound: true})
	id := create(t, h, "/adherents", adherentBody("jdoe"))

	rec := do(t, h, http.MethodPost, "/adherents/login", map[string]string{"login": "jdoe", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decode[credential.Token](t, rec)
	assert.Equal(t, "bearer", tok.TokenType)
	claims, err := issuer.Parse(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", claims.Subject)
	assert.Equal(t, id, claims.AdherentID)

	for _, body := range []map[string]string{
		{"login": "jdoe", "password": "wrong"},
		{"login": "ghost", "password": "secret"},
	} {
		rec = do(t, h, http.MethodPost, "/adherents/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Incorrect login or password", decode[errResp](t, rec).Error)
	}

	rec = do(t, h, http.MethodGet, "/adherents/me", nil, "Authorization", "Bearer "+tok.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[idResp](t, rec).ID)

	rec = do(t, h, http.MethodGet, "/adherents/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, h, http.MethodGet, "/adherents/me", nil, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoans_ListAndBulkDelete(t *testing.T) {
	h := defaultSetup(t)
	adherentID := create(t, h, "/adherents", adherentBody("jdoe"))
	bookID := ident.Encode(ident.New())
	for _, date := range []string{"2024-01-15", "2024-01-15", "2024-03-01"} {
		create(t, h, "/loans", map[string]any{"loanDate": date, "book_id": bookID, "adherent_id": adherentID})
	}

	rec := do(t, h, http.MethodGet, "/loans?loanDate=2024-01-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loans := decode[[]map[string]any](t, rec)
	require.Len(t, loans, 2)
	assert.Contains(t, loans[0], "returnDate")
	assert.Nil(t, loans[0]["returnDate"])

	rec = do(t, h, http.MethodGet, "/loans?loanDate=15-01-2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/adherents/"+adherentID+"/loans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 3)

	rec = do(t, h, http.MethodDelete, "/loans/?loanDate=1999-01-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", strings.TrimSpace(rec.Body.String()))

	rec = do(t, h, http.MethodDelete, "/loans/?loanDate=2024-01-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", strings.TrimSpace(rec.Body.String()))

	rec = do(t, h, http.MethodGet, "/loans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]idResp](t, rec), 1)

	rec = do(t, h, http.MethodPost, "/loans", map[string]any{"loanDate": "2024-01-15", "book_id": "bad", "adherent_id": adherentID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDictionaryAndHealth(t *testing.T) {
	h := defaultSetup(t)

	rec := do(t, h, http.MethodGet, "/dictionary/book-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var types struct {
		Items []struct{ Code, Label string } `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	assert.Len(t, types.Items, 12)

	rec = do(t, h, http.MethodGet, "/dictionary/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "librarian")

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", nil).Code)

	rec = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "library_http_requests_total")
}

func TestCORS(t *testing.T) {
	h, _ := setup(t, Options{CORSOrigins: []string{"http://localhost:5173"}})
	req := httptest.NewRequest(http.MethodOptions, "/books", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
