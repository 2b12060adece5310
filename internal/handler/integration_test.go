package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

// Full request flow: register, login, create a post, comment on it as a
// different user, then find the post through the public listing.
func TestIntegration_RegisterLoginPostComment(t *testing.T) {
	srv := newTestServer(t)

	// 1. Register the post author.
	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Writer", "email": "writer@example.com", "password": "secret1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	// 2. Login with the same credentials.
	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email": "writer@example.com", "password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	writerToken, _ := decodeBody(t, resp)["token"].(string)
	if writerToken == "" {
		t.Fatal("login: expected a token")
	}

	// 3. Create a post with the login token.
	post := createPost(t, srv, writerToken, "Integration Post")
	postID, _ := post["id"].(string)
	if postID == "" {
		t.Fatal("create: expected a post ID")
	}

	// 4. Comment on the post, attributed to a different user.
	commenterToken := registerAndGetToken(t, srv, "Commenter", "commenter@example.com")
	resp = doJSON(t, http.MethodPost, srv.URL+"/posts/"+postID+"/comment", commenterToken, map[string]string{
		"comment": "great read",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("comment: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// 5. Find the post through the public listing and check the comment.
	listResp, err := http.Get(srv.URL + "/posts")
	if err != nil {
		t.Fatalf("GET /posts: %v", err)
	}
	defer listResp.Body.Close()

	var posts []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&posts); err != nil {
		t.Fatalf("decode listing: %v", err)
	}

	var found map[string]any
	for _, p := range posts {
		if p["id"] == postID {
			found = p
		}
	}
	if found == nil {
		t.Fatalf("post %s not in the listing", postID)
	}

	comments, _ := found["comments"].([]any)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	comment, _ := comments[0].(map[string]any)
	if comment["comment"] != "great read" {
		t.Fatalf("unexpected comment text: %v", comment["comment"])
	}
	// Attribution defaults to the token-resolved commenter.
	if comment["userId"] == "" || comment["userId"] == found["author"].(map[string]any)["id"] {
		t.Fatalf("expected comment attributed to the commenter, got %v", comment["userId"])
	}
}
