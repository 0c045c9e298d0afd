package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"warbler/database"
	"warbler/handlers"
	"warbler/repositories"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db open: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	feedRepo := repositories.NewFeedRepository(db)

	sessionManager := handlers.NewSessionManager()
	userHandler := handlers.NewUserHandler(userRepo, followRepo, messageRepo, sessionManager)
	messageHandler := handlers.NewMessageHandler(messageRepo, feedRepo, likeRepo, userRepo, sessionManager)
	likeHandler := handlers.NewLikeHandler(likeRepo, userRepo, sessionManager)
	systemHandler := handlers.NewSystemHandler(db)

	return SetupRoutes(userHandler, messageHandler, likeHandler, systemHandler)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, srv http.Handler, username, email string) []*http.Cookie {
	t.Helper()
	resp := doJSON(t, srv, http.MethodPost, "/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup %s: code %d body %s", username, resp.Code, resp.Body.String())
	}
	cookies := resp.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("signup set no session cookie")
	}
	return cookies
}

func TestSignupLogin(t *testing.T) {
	srv := newTestServer(t)

	signupAndLogin(t, srv, "alice", "alice@example.com")

	resp := doJSON(t, srv, http.MethodPost, "/login", map[string]string{
		"username": "alice", "password": "password123",
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: code %d body %s", resp.Code, resp.Body.String())
	}
	var user struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if user.Username != "alice" || user.ID == 0 {
		t.Fatalf("login returned %+v", user)
	}
}

func TestSignupDuplicateUsernameConflict(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv, "alice", "alice@example.com")

	resp := doJSON(t, srv, http.MethodPost, "/signup", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "password123",
	}, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: code %d body %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Field string `json:"field"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Field != "username" {
		t.Fatalf("conflict field = %q, want username", body.Field)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv, "alice", "alice@example.com")

	wrongPassword := doJSON(t, srv, http.MethodPost, "/login", map[string]string{
		"username": "alice", "password": "wrong",
	}, nil)
	unknownUser := doJSON(t, srv, http.MethodPost, "/login", map[string]string{
		"username": "nobody", "password": "password123",
	}, nil)

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("codes %d / %d, want both 401", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("failure bodies differ: %s vs %s", wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestHomeFeedFlow(t *testing.T) {
	srv := newTestServer(t)

	aliceCookies := signupAndLogin(t, srv, "alice", "alice@example.com")
	bobCookies := signupAndLogin(t, srv, "bob", "bob@example.com")

	// alice posts
	resp := doJSON(t, srv, http.MethodPost, "/messages", map[string]string{"text": "hello"}, aliceCookies)
	if resp.Code != http.StatusCreated {
		t.Fatalf("post message: code %d body %s", resp.Code, resp.Body.String())
	}
	var posted struct {
		ID     uint `json:"id"`
		UserID uint `json:"user_id"`
	}
	json.NewDecoder(resp.Body).Decode(&posted)

	// anonymous home view is empty
	resp = doJSON(t, srv, http.MethodGet, "/", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("anonymous home: code %d", resp.Code)
	}
	var home struct {
		Anonymous bool              `json:"anonymous"`
		Messages  []json.RawMessage `json:"messages"`
		Likes     []uint            `json:"likes"`
	}
	json.NewDecoder(resp.Body).Decode(&home)
	if !home.Anonymous || len(home.Messages) != 0 {
		t.Fatalf("anonymous home = %+v", home)
	}

	// alice follows nobody; her feed is exactly her own message
	resp = doJSON(t, srv, http.MethodGet, "/", nil, aliceCookies)
	json.NewDecoder(resp.Body).Decode(&home)
	if home.Anonymous || len(home.Messages) != 1 {
		t.Fatalf("alice home = %+v", home)
	}

	// bob's feed is empty until he follows alice
	resp = doJSON(t, srv, http.MethodGet, "/", nil, bobCookies)
	json.NewDecoder(resp.Body).Decode(&home)
	if len(home.Messages) != 0 {
		t.Fatalf("bob home before follow = %+v", home)
	}

	resp = doJSON(t, srv, http.MethodPost, "/users/follow/1", nil, bobCookies)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("follow: code %d body %s", resp.Code, resp.Body.String())
	}
	resp = doJSON(t, srv, http.MethodGet, "/", nil, bobCookies)
	json.NewDecoder(resp.Body).Decode(&home)
	if len(home.Messages) != 1 {
		t.Fatalf("bob home after follow = %+v", home)
	}

	// like toggle: liked then unliked
	likePath := "/messages/1/like"
	resp = doJSON(t, srv, http.MethodPost, likePath, nil, aliceCookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("like: code %d body %s", resp.Code, resp.Body.String())
	}
	var toggle struct {
		State string `json:"state"`
	}
	json.NewDecoder(resp.Body).Decode(&toggle)
	if toggle.State != "liked" {
		t.Fatalf("first toggle = %q, want liked", toggle.State)
	}
	resp = doJSON(t, srv, http.MethodPost, likePath, nil, aliceCookies)
	json.NewDecoder(resp.Body).Decode(&toggle)
	if toggle.State != "unliked" {
		t.Fatalf("second toggle = %q, want unliked", toggle.State)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv, "alice", "alice@example.com")

	paths := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/messages", map[string]string{"text": "hi"}},
		{http.MethodPost, "/users/follow/1", nil},
		{http.MethodPost, "/users/stop-following/1", nil},
		{http.MethodPost, "/messages/1/like", nil},
		{http.MethodPut, "/users/profile", map[string]string{"bio": "x"}},
		{http.MethodPost, "/users/delete", nil},
	}
	for _, tc := range paths {
		resp := doJSON(t, srv, tc.method, tc.path, tc.body, nil)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("%s %s anonymous: code %d, want 401", tc.method, tc.path, resp.Code)
		}
	}
}

func TestDeleteMessageByNonAuthor(t *testing.T) {
	srv := newTestServer(t)
	aliceCookies := signupAndLogin(t, srv, "alice", "alice@example.com")
	bobCookies := signupAndLogin(t, srv, "bob", "bob@example.com")

	resp := doJSON(t, srv, http.MethodPost, "/messages", map[string]string{"text": "mine"}, aliceCookies)
	if resp.Code != http.StatusCreated {
		t.Fatalf("post: code %d", resp.Code)
	}

	resp = doJSON(t, srv, http.MethodDelete, "/messages/1", nil, bobCookies)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-author delete: code %d, want 403", resp.Code)
	}
	// the message is still there
	resp = doJSON(t, srv, http.MethodGet, "/messages/1", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("message gone after refused delete: code %d", resp.Code)
	}
}

func TestHealthAndNoCacheHeaders(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("health: code %d", resp.Code)
	}
	if cc := resp.Header().Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate" {
		t.Fatalf("Cache-Control = %q", cc)
	}
}
