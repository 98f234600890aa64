package mockapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tunewell/finetune-go/pkg/finetune"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "mock.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(0, store, logger).Router)
	t.Cleanup(srv.Close)
	return srv
}

func TestMockAPI_RequiresBearer(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/fine-tunes")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "API key") {
		t.Errorf("body %q does not mention the API key", body)
	}
}

func TestMockAPI_CreateAndListEvents(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c := finetune.New("mock-key", finetune.WithBaseURL(srv.URL))

	ft, err := c.CreateFineTune(ctx, finetune.CreateFineTuneRequest{TrainingFile: "file-abc", Model: "curie"})
	if err != nil {
		t.Fatalf("CreateFineTune() error = %v", err)
	}
	if !strings.HasPrefix(ft.ID, "ft-") {
		t.Errorf("ID = %q, want ft- prefix", ft.ID)
	}
	if ft.Status != finetune.StatusPending {
		t.Errorf("Status = %q, want %q", ft.Status, finetune.StatusPending)
	}

	events, err := c.ListFineTuneEvents(ctx, ft.ID, false)
	if err != nil {
		t.Fatalf("ListFineTuneEvents() error = %v", err)
	}
	if len(events.Data) != 1 {
		t.Fatalf("got %d events, want 1", len(events.Data))
	}
	if !strings.Contains(events.Data[0].Message, "Created fine-tune") {
		t.Errorf("event message = %q", events.Data[0].Message)
	}
}

func TestMockAPI_Cancel(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c := finetune.New("mock-key", finetune.WithBaseURL(srv.URL))

	ft, err := c.CreateFineTune(ctx, finetune.CreateFineTuneRequest{TrainingFile: "file-abc"})
	if err != nil {
		t.Fatalf("CreateFineTune() error = %v", err)
	}

	cancelled, err := c.CancelFineTune(ctx, ft.ID)
	if err != nil {
		t.Fatalf("CancelFineTune() error = %v", err)
	}
	if cancelled.Status != finetune.StatusCancelled {
		t.Errorf("Status = %q, want %q", cancelled.Status, finetune.StatusCancelled)
	}

	events, err := c.ListFineTuneEvents(ctx, ft.ID, false)
	if err != nil {
		t.Fatalf("ListFineTuneEvents() error = %v", err)
	}
	if len(events.Data) != 2 {
		t.Fatalf("got %d events, want 2", len(events.Data))
	}
	last := events.Data[len(events.Data)-1]
	if !strings.Contains(last.Message, "cancelled") {
		t.Errorf("last event message = %q", last.Message)
	}
}

func TestMockAPI_UnknownJob(t *testing.T) {
	srv := newTestServer(t)

	c := finetune.New("mock-key", finetune.WithBaseURL(srv.URL))

	_, err := c.ListFineTuneEvents(context.Background(), "ft-missing", false)
	var apiErr *finetune.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *finetune.APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "ft-missing") {
		t.Errorf("Error() = %q, want status and job ID", err.Error())
	}
}

func TestMockAPI_ListModels(t *testing.T) {
	srv := newTestServer(t)

	c := finetune.New("mock-key", finetune.WithBaseURL(srv.URL))

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models.Data) == 0 {
		t.Fatal("expected base models")
	}
}
