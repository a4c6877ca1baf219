package screening

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/intake"
	"resume-screener/internal/llm"
)

type uploadFile struct {
	name    string
	content []byte
}

func newTestRouter(t *testing.T, client llm.Client, baseDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(Templates())

	in := intake.New(baseDir, []string{"pdf"})
	svc := NewService(client, ModeScreening)
	NewHandler(in, svc, []string{"pdf"}, 10<<20).RegisterRoutes(r)
	return r
}

func multipartRequest(t *testing.T, apiKey string, withFilesField bool, files []uploadFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if apiKey != "" {
		if err := w.WriteField("api_key", apiKey); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withFilesField {
		for _, f := range files {
			fw, err := w.CreateFormFile("files", f.name)
			if err != nil {
				t.Fatalf("create form file: %v", err)
			}
			if _, err := fw.Write(f.content); err != nil {
				t.Fatalf("write form file: %v", err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGetRendersForm(t *testing.T) {
	r := newTestRouter(t, &fakeClient{}, t.TempDir())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `name="api_key"`) || !strings.Contains(body, `name="files"`) {
		t.Fatalf("form fields missing from page: %s", body)
	}
	if strings.Contains(body, "<table>") {
		t.Fatal("empty form must not render a result table")
	}
}

func TestPostMissingAPIKey(t *testing.T) {
	r := newTestRouter(t, &fakeClient{}, t.TempDir())

	req := multipartRequest(t, "", true, []uploadFile{{name: "resume.pdf", content: []byte("x")}})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if got := resp.Body.String(); got != "API key is required" {
		t.Fatalf("body = %q", got)
	}
}

func TestPostWithoutFilesFieldRedirects(t *testing.T) {
	r := newTestRouter(t, &fakeClient{}, t.TempDir())

	// Multipart form carrying only the credential, no files field at all.
	req := multipartRequest(t, "sk-test", false, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("location = %q", loc)
	}
}

func TestPostNonMultipartRedirects(t *testing.T) {
	r := newTestRouter(t, &fakeClient{}, t.TempDir())

	form := url.Values{"api_key": {"sk-test"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.Code)
	}
}

func TestPostEndToEnd(t *testing.T) {
	client := &fakeClient{response: `{"Candidate Name":"John Smith","Contact No.":"555-1234","Email ID":"js@x.com","TP1":"Yes"}`}
	baseDir := t.TempDir()
	r := newTestRouter(t, client, baseDir)

	req := multipartRequest(t, "sk-test", true, []uploadFile{
		{name: "resume.pdf", content: []byte("not really a pdf")},
		{name: "malware.exe", content: []byte("MZ")},
	})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()

	if !strings.Contains(body, "<strong>John Smith</strong>") {
		t.Fatalf("candidate name should render bold, body: %s", body)
	}
	for _, want := range []string{"555-1234", "js@x.com", "TP1", "Yes", "resume.pdf"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(body, "malware.exe") {
		t.Fatal("rejected file must not appear in the uploaded list")
	}
	if strings.Contains(body, "<th>Rating</th>") {
		t.Fatal("rating column must be dropped before display")
	}

	if len(client.keys) != 1 || client.keys[0] != "sk-test" {
		t.Fatalf("per-request key must reach the client, got %v", client.keys)
	}

	// The batch directory is request-scoped and cleaned up on exit.
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		t.Fatalf("read base dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("batch dir should be removed after the request, found %v", entries)
	}
}

func TestPostEscapesCompletionValues(t *testing.T) {
	client := &fakeClient{response: `{"Candidate Name":"Jane Doe","Email ID":"<script>alert(1)</script>"}`}
	r := newTestRouter(t, client, t.TempDir())

	req := multipartRequest(t, "sk-test", true, []uploadFile{{name: "resume.pdf", content: []byte("x")}})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	body := resp.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatal("completion values must be escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("escaped value missing from page: %s", body)
	}
}
