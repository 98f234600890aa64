package finetune

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/files" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("purpose"); got != "fine-tune" {
			t.Errorf("purpose = %q, want %q", got, "fine-tune")
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "train.jsonl" {
			t.Errorf("filename = %q, want %q", header.Filename, "train.jsonl")
		}
		content, _ := io.ReadAll(f)
		if !strings.Contains(string(content), `"prompt"`) {
			t.Errorf("file content not forwarded: %q", content)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"file-xyz","object":"file","bytes":42,"filename":"train.jsonl","purpose":"fine-tune"}`)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))

	data := strings.NewReader(`{"prompt":"hello ->","completion":" world"}` + "\n")
	file, err := c.UploadFile(context.Background(), "fine-tune", "train.jsonl", data)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if file.ID != "file-xyz" {
		t.Errorf("ID = %q, want %q", file.ID, "file-xyz")
	}
}

func TestFileContent_RawBody(t *testing.T) {
	const content = `{"prompt":"a","completion":"b"}` + "\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/files/file-xyz/content" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// File downloads are served as octet-stream; no MIME check applies.
		w.Header().Set("Content-Type", "application/octet-stream")
		io.WriteString(w, content)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))

	got, err := c.FileContent(context.Background(), "file-xyz")
	if err != nil {
		t.Fatalf("FileContent() error = %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}
}

func TestDeleteFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/files/file-xyz" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"file-xyz","object":"file","deleted":true}`)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))

	resp, err := c.DeleteFile(context.Background(), "file-xyz")
	if err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if !resp.Deleted {
		t.Error("Deleted = false, want true")
	}
}
