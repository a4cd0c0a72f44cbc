//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type projectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type taskResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Points int    `json:"points"`
}

type pointsResponse struct {
	ProjectID       string `json:"projectId"`
	TotalPoints     int64  `json:"totalPoints"`
	CompletedPoints int64  `json:"completedPoints"`
}

// TestE2ESmoke walks the happy path against a running server:
// register, login, create a project, add tasks, verify the points
// rollup, then clean up.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("TASKDECK_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())

	// Register
	var registered authResponse
	doJSON(t, baseURL, "POST", "/users/register", "", map[string]any{
		"name":     "E2E Runner",
		"email":    email,
		"password": "e2e-password",
	}, http.StatusCreated, &registered)
	if registered.Token == "" {
		t.Fatal("register returned no token")
	}

	// Login with the same credentials
	var logged authResponse
	doJSON(t, baseURL, "POST", "/users/login", "", map[string]any{
		"email":    email,
		"password": "e2e-password",
	}, http.StatusOK, &logged)
	token := logged.Token

	// Create a project
	var project projectResponse
	doJSON(t, baseURL, "POST", "/projects", token, map[string]any{
		"name": "E2E Project",
	}, http.StatusCreated, &project)

	// Add one finished and one pending task
	var done taskResponse
	doJSON(t, baseURL, "POST", "/tasks", token, map[string]any{
		"title":     "Finished work",
		"projectId": project.ID,
		"status":    "Done",
		"points":    5,
	}, http.StatusCreated, &done)

	var pending taskResponse
	doJSON(t, baseURL, "POST", "/tasks", token, map[string]any{
		"title":     "Pending work",
		"projectId": project.ID,
		"points":    3,
	}, http.StatusCreated, &pending)

	// Verify the rollup
	var points pointsResponse
	doJSON(t, baseURL, "GET", "/projects/"+project.ID+"/points", token, nil, http.StatusOK, &points)
	if points.TotalPoints != 8 {
		t.Errorf("totalPoints = %d, want 8", points.TotalPoints)
	}
	if points.CompletedPoints != 5 {
		t.Errorf("completedPoints = %d, want 5", points.CompletedPoints)
	}

	// Move the pending task to Done and re-check
	doJSON(t, baseURL, "PUT", "/tasks/"+pending.ID, token, map[string]any{
		"status": "Done",
	}, http.StatusOK, nil)

	doJSON(t, baseURL, "GET", "/projects/"+project.ID+"/points", token, nil, http.StatusOK, &points)
	if points.CompletedPoints != 8 {
		t.Errorf("completedPoints after update = %d, want 8", points.CompletedPoints)
	}

	// Clean up
	doJSON(t, baseURL, "DELETE", "/tasks/"+done.ID, token, nil, http.StatusOK, nil)
	doJSON(t, baseURL, "DELETE", "/tasks/"+pending.ID, token, nil, http.StatusOK, nil)
	doJSON(t, baseURL, "DELETE", "/projects/"+project.ID, token, nil, http.StatusOK, nil)

	// The deleted project is gone
	doJSON(t, baseURL, "GET", "/projects/"+project.ID, token, nil, http.StatusNotFound, nil)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// doJSON issues a JSON request, asserts the status code, and decodes
// the response body into out when non-nil.
func doJSON(t *testing.T, baseURL, method, path, token string, body any, wantStatus int, out any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (body: %s)", method, path, resp.StatusCode, wantStatus, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("%s %s: decode response: %v (body: %s)", method, path, err, raw)
		}
	}
}
