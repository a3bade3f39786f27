package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/repository"
	"github.com/roamly/travel-buddy-backend/internal/service"
)

// stubUploader satisfies service.PhotoUploader without touching any
// external storage.
type stubUploader struct{}

func (stubUploader) UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error) {
	return "https://cdn.example.com/" + filename, nil
}

func multipartBody(t *testing.T, data string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("data", data); err != nil {
		t.Fatalf("write data field: %v", err)
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("fake image bytes"))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUserHandler_Register(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewUserHandler(service.NewUserService(store, stubUploader{}))

	t.Run("plain JSON body", func(t *testing.T) {
		body := `{"name":"Jane","email":"jane@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
		}
		response := decodeResponse(t, rr)
		if response.Meta.Message != "User registered successfully" {
			t.Errorf("unexpected message: %s", response.Meta.Message)
		}
		data := response.Data.(map[string]interface{})
		if data["email"] != "jane@example.com" {
			t.Errorf("email = %v", data["email"])
		}
		if _, exposed := data["password"]; exposed {
			t.Errorf("response exposes password material")
		}
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		body := `{"name":"Other","email":"jane@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		if rr.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d: %s", http.StatusConflict, rr.Code, rr.Body.String())
		}
	})

	t.Run("multipart body with profile photo", func(t *testing.T) {
		buf, contentType := multipartBody(t,
			`{"name":"Max","email":"max@example.com","password":"password123","profile":{"bio":"hello"}}`,
			"avatar.jpg")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", buf)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
		}
		response := decodeResponse(t, rr)
		data := response.Data.(map[string]interface{})
		profile := data["profile"].(map[string]interface{})
		if profile["profilePhoto"] != "https://cdn.example.com/avatar.jpg" {
			t.Errorf("profile photo = %v", profile["profilePhoto"])
		}
		if profile["bio"] != "hello" {
			t.Errorf("bio = %v", profile["bio"])
		}
	})

	t.Run("multipart body without file", func(t *testing.T) {
		buf, contentType := multipartBody(t,
			`{"name":"Sam","email":"sam@example.com","password":"password123"}`, "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", buf)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
		}
	})

	t.Run("validation failure is 400", func(t *testing.T) {
		body := `{"name":"","email":"bad","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.Register(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
		}
		response := decodeResponse(t, rr)
		if len(response.Meta.Details) != 3 {
			t.Errorf("expected 3 field errors, got %+v", response.Meta.Details)
		}
	})
}

func TestUserHandler_List(t *testing.T) {
	store := repository.NewMemoryStore()
	userService := service.NewUserService(store, nil)
	handler := NewUserHandler(userService)

	young := 19
	if _, err := userService.Register(context.Background(), model.RegisterRequest{
		Name: "Young", Email: "young@example.com", Password: "password123",
		Profile: &model.Profile{Age: &young},
	}, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	caller := seedUser(t, store, "caller", model.RoleUser)

	req := newAuthedRequest(http.MethodGet, "/api/v1/users?age%5Bmin%5D=18&age%5Bmax%5D=30", nil, caller, nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var page struct {
		Meta model.PageMeta       `json:"meta"`
		Data []model.UserResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	if page.Meta.Total != 1 || len(page.Data) != 1 || page.Data[0].Email != "young@example.com" {
		t.Errorf("expected only the young user, got %+v", page.Data)
	}
}

func TestUserHandler_UpdateMe(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewUserHandler(service.NewUserService(store, nil))
	user := seedUser(t, store, "jane", model.RoleUser)

	req := newAuthedRequest(http.MethodPut, "/api/v1/users/me",
		strings.NewReader(`{"name":"Jane Updated"}`), user, nil)
	rr := httptest.NewRecorder()

	handler.UpdateMe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	response := decodeResponse(t, rr)
	data := response.Data.(map[string]interface{})
	if data["name"] != "Jane Updated" {
		t.Errorf("name = %v", data["name"])
	}
}
