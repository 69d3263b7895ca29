package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, logger)
}

// strapiJSON is the Content-Type the CMS answers with
const strapiJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", strapiJSON)
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func tokenCtx() context.Context {
	return WithToken(context.Background(), "jwt-123")
}

func TestResourceRemoveRequires204(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		sentinel error
	}{
		{name: "204 is success", status: http.StatusNoContent},
		{name: "200 with body is failure", status: http.StatusOK, body: `{"data":{"documentId":"abc"}}`, wantErr: true, sentinel: ErrDeleteNotConfirmed},
		{name: "202 is failure", status: http.StatusAccepted, wantErr: true, sentinel: ErrDeleteNotConfirmed},
		{name: "404 is api error", status: http.StatusNotFound, body: `{"error":{"message":"Not Found"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotAuth string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			res := NewResource[models.Remark](client, ResourceDef{Schema: repositories.RemarkSchema})

			err := res.Remove(tokenCtx(), "abc")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Remove() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("Remove() error = %v, want %v", err, tt.sentinel)
			}
			if gotPath != "/api/remarks/abc" {
				t.Errorf("path = %q", gotPath)
			}
			if gotAuth != "Bearer jwt-123" {
				t.Errorf("Authorization = %q", gotAuth)
			}
		})
	}
}

func TestResourceListWalksPages(t *testing.T) {
	var pages []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("pagination[page]")
		pages = append(pages, page)
		if r.URL.Query().Get("populate") != "*" {
			t.Errorf("populate = %q", r.URL.Query().Get("populate"))
		}
		switch page {
		case "1":
			writeJSON(w, http.StatusOK, `{"data":[{"documentId":"a","name":"Info"}],"meta":{"pagination":{"page":1,"pageCount":2}}}`)
		default:
			writeJSON(w, http.StatusOK, `{"data":[{"documentId":"b","name":"Mech"}],"meta":{"pagination":{"page":2,"pageCount":2}}}`)
		}
	})
	res := NewResource[models.Specialite](client, ResourceDef{Schema: repositories.SpecialiteSchema, Populate: populateAll})

	items, err := res.List(tokenCtx())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 || items[0].Key() != "a" || items[1].Key() != "b" {
		t.Errorf("List() = %+v", items)
	}
	if strings.Join(pages, ",") != "1,2" {
		t.Errorf("pages requested = %v", pages)
	}
}

func TestResourceListBareUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `[{"id":7,"documentId":"u7","username":"amal","role":{"id":3,"name":"doctor"}}]`)
	})
	res := NewResource[models.User](client, ResourceDef{
		Schema:          repositories.UserSchema,
		Populate:        populateUser,
		Envelope:        Bare,
		PathByNumericID: true,
	})

	users, err := res.List(tokenCtx())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 1 || users[0].RoleName() != "doctor" {
		t.Fatalf("List() = %+v", users)
	}
	if got := res.ItemID(users[0]); got != "7" {
		t.Errorf("ItemID() = %q, want 7", got)
	}
}

func TestResourceListEmptyIsNotNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[],"meta":{"pagination":{"page":1,"pageCount":0}}}`)
	})
	res := NewResource[models.Stage](client, ResourceDef{Schema: repositories.StageSchema})

	items, err := res.List(tokenCtx())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("List() = %#v, want empty slice", items)
	}
}

func TestResourceUpdateDisconnectsClearedRelation(t *testing.T) {
	var body map[string]map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/stagiaires/s1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, `{"data":{"documentId":"s1","first_name":"Ali"}}`)
	})
	res := NewResource[models.Stagiaire](client, ResourceDef{Schema: repositories.StagiaireSchema})

	updated, err := res.Update(tokenCtx(), "s1", &repositories.Mutation{
		Edit:      true,
		Fields:    map[string]any{"first_name": "Ali"},
		Relations: map[string][]string{"brigade": nil},
		Original:  map[string][]string{"brigade": {"X"}},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.FirstName != "Ali" {
		t.Errorf("Update() = %+v", updated)
	}

	brigade, ok := body["data"]["brigade"].(map[string]any)
	if !ok {
		t.Fatalf("brigade payload missing: %v", body)
	}
	disconnect, _ := brigade["disconnect"].([]any)
	if len(disconnect) != 1 || disconnect[0] != "X" {
		t.Errorf("disconnect = %v, want [X]", brigade["disconnect"])
	}
	if _, present := brigade["connect"]; present {
		t.Errorf("connect should be omitted: %v", brigade)
	}
}

func TestResourceCreateBareUserSendsRoleID(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, `{"id":9,"documentId":"u9","username":"nour"}`)
	})
	res := NewResource[models.User](client, ResourceDef{Schema: repositories.UserSchema, Envelope: Bare})

	user, err := res.Create(tokenCtx(), &repositories.Mutation{
		Fields:    map[string]any{"username": "nour", "email": "n@x.tn"},
		Relations: map[string][]string{"role": {"3"}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.NumericID() != 9 {
		t.Errorf("Create() = %+v", user)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Errorf("users body must not be wrapped: %v", body)
	}
	if body["role"] != float64(3) {
		t.Errorf("role = %#v, want 3", body["role"])
	}
}

func TestResourceValidationMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":{"status":400,"name":"ValidationError","message":"2 errors occurred",
			"details":{"errors":[{"path":["cin"],"message":"cin must be unique"},{"path":["mle"],"message":"mle is required"}]}}}`)
	})
	res := NewResource[models.Stagiaire](client, ResourceDef{Schema: repositories.StagiaireSchema})

	_, err := res.Create(tokenCtx(), &repositories.Mutation{Fields: map[string]any{"cin": "1"}})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Create() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if got := Message(err); got != "cin must be unique, mle is required" {
		t.Errorf("Message() = %q", got)
	}
	if len(apiErr.Fields) != 2 || apiErr.Fields[0].Path != "cin" {
		t.Errorf("Fields = %+v", apiErr.Fields)
	}
}

func TestTransportErrorIsGeneric(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, logger)
	res := NewResource[models.Stage](client, ResourceDef{Schema: repositories.StageSchema})

	_, err := res.List(tokenCtx())
	if err == nil {
		t.Fatal("List() expected transport error")
	}
	if got := Message(err); got != GenericErrorMessage {
		t.Errorf("Message() = %q", got)
	}
}

func TestDecodeIgnoresContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/me":
			io.WriteString(w, `{"id":1,"username":"root","role":{"id":1,"name":"Admin"}}`)
		default:
			io.WriteString(w, `{"data":[{"documentId":"a","name":"Info"}],"meta":{"pagination":{"page":1,"pageCount":1}}}`)
		}
	})

	user, err := NewAccounts(client).Me(tokenCtx())
	if err != nil || user.RoleName() != "Admin" {
		t.Errorf("Me() = %+v, %v", user, err)
	}
	items, err := NewResource[models.Specialite](client, ResourceDef{Schema: repositories.SpecialiteSchema}).List(tokenCtx())
	if err != nil || len(items) != 1 {
		t.Errorf("List() = %+v, %v", items, err)
	}
}

func TestResourceSaveWithoutEntity(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "null data", body: `{"data":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})
			res := NewResource[models.Stage](client, ResourceDef{Schema: repositories.StageSchema})

			saved, err := res.Create(tokenCtx(), &repositories.Mutation{Fields: map[string]any{"name": "S1"}})
			if !errors.Is(err, ErrEmptyResponse) {
				t.Errorf("Create() = %+v, %v, want ErrEmptyResponse", saved, err)
			}
		})
	}
}

func TestResourceListRejectsMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>maintenance</html>`)
	})
	res := NewResource[models.Stage](client, ResourceDef{Schema: repositories.StageSchema})

	if items, err := res.List(tokenCtx()); err == nil {
		t.Errorf("List() = %+v, want decode error", items)
	}
}
