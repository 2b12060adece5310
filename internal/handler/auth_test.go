package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mireles/inkwell/internal/handler"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	auth, posts := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, posts)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleRegister_Success(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatal("expected a token in the response")
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "B", "email": "a@x.com", "password": "other12",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Email is already in use" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Short", "email": "short@example.com", "password": "abcde",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for 5-char password, got %d", resp.StatusCode)
	}
}

func TestHandleLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Login", "email": "login@example.com", "password": "secret1",
	})
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email": "login@example.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatal("expected a token in the response")
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "User", "email": "known@example.com", "password": "secret1",
	})
	resp.Body.Close()

	// Wrong password and unknown email yield identical responses.
	wrongPw := postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email": "known@example.com", "password": "wrongpass",
	})
	unknown := postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "secret1",
	})

	if wrongPw.StatusCode != http.StatusBadRequest || unknown.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", wrongPw.StatusCode, unknown.StatusCode)
	}
	msg1 := decodeBody(t, wrongPw)["error"]
	msg2 := decodeBody(t, unknown)["error"]
	if msg1 != "Invalid email or password" || msg1 != msg2 {
		t.Fatalf("expected identical generic errors, got %v vs %v", msg1, msg2)
	}
}
