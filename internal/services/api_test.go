package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pbin/internal/server"
	"github.com/desertthunder/pbin/internal/shared"
	"github.com/desertthunder/pbin/internal/store"
	tu "github.com/desertthunder/pbin/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient)

			if srv.BaseURL() != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.BaseURL())
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.BaseURL() != DefaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", DefaultBaseURL, srv.BaseURL())
			}
		})

		t.Run("With Nil Client", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)

			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/test" {
					t.Errorf("expected path '/test', got %s", r.URL.Path)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK || !resp.OK() {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
			if resp.JSONData == nil {
				t.Error("expected JSONData to be populated")
			}
		})

		t.Run("Successful Request With Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if resp.JSONData != nil {
				t.Error("expected JSONData to be nil")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("expected body 'plain text response', got %s", string(resp.Body))
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.Get(context.Background(), "/test\x00invalid")

			if err == nil {
				t.Fatal("expected error for invalid URL")
			}
			if !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if err == nil {
				t.Fatal("expected error for failed body read")
			}
			if !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			srv := NewAPIService(server.URL, nil)
			_, err := srv.Get(ctx, "/test")

			if err == nil {
				t.Error("expected error for canceled context")
			}
		})

		t.Run("Response Headers Are Preserved", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("test"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
			}
		})
	})

	t.Run("Post and Put send JSON", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut} {
			t.Run(method, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if r.Method != method {
						t.Errorf("expected %s method, got %s", method, r.Method)
					}
					if r.Header.Get("Content-Type") != "application/json" {
						t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
					}

					body, _ := io.ReadAll(r.Body)
					var data map[string]string
					if err := json.Unmarshal(body, &data); err != nil {
						t.Errorf("failed to unmarshal request body: %v", err)
					}
					if data["title"] != "t" {
						t.Errorf("expected request data 'title:t', got %v", data)
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusCreated)
					json.NewEncoder(w).Encode(map[string]string{"id": "123"})
				}))
				defer server.Close()

				srv := NewAPIService(server.URL, nil)
				requestData, _ := json.Marshal(map[string]string{"title": "t"})

				var (
					resp *APIResponse
					err  error
				)
				if method == http.MethodPost {
					resp, err = srv.Post(context.Background(), "/api/pastes", requestData)
				} else {
					resp, err = srv.Put(context.Background(), "/api/pastes/123", requestData)
				}

				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if resp.StatusCode != http.StatusCreated {
					t.Errorf("expected status 201, got %d", resp.StatusCode)
				}
				if !resp.IsJSON {
					t.Error("expected response to be JSON")
				}
			})
		}
	})

	t.Run("Err", func(t *testing.T) {
		tc := []struct {
			name   string
			status int
			body   string
			want   error
			msg    string
		}{
			{name: "ok", status: http.StatusOK, body: `{}`},
			{name: "no content", status: http.StatusNoContent},
			{name: "bad request", status: http.StatusBadRequest, body: `{"error":"invalid input"}`, want: shared.ErrInvalidInput, msg: "invalid input"},
			{name: "not found", status: http.StatusNotFound, body: `{"error":"paste not found"}`, want: shared.ErrPasteNotFound, msg: "paste not found"},
			{name: "conflict", status: http.StatusConflict, body: `{"error":"paste id already exists"}`, want: shared.ErrDuplicateID},
			{name: "plain text error", status: http.StatusBadGateway, body: "upstream down\n", want: shared.ErrAPIRequest, msg: "upstream down"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				resp := &APIResponse{StatusCode: tt.status, Body: []byte(tt.body)}
				err := resp.Err()

				if tt.want == nil {
					if err != nil {
						t.Errorf("expected no error, got %v", err)
					}
					return
				}
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
					t.Errorf("expected message %q in %v", tt.msg, err)
				}
			})
		}
	})

	t.Run("Against pbin server", func(t *testing.T) {
		s := store.New()
		ts := httptest.NewServer(server.NewRouter(s, "http://pb.test", log.New(io.Discard)))
		defer ts.Close()

		srv := NewAPIService(ts.URL, nil)
		ctx := context.Background()

		if err := srv.Health(ctx); err != nil {
			t.Fatalf("expected healthy server, got %v", err)
		}

		resp, err := srv.Post(ctx, "/api/pastes", []byte(`{"id":"remote-1","title":"Remote","content":"body"}`))
		if err != nil || resp.Err() != nil {
			t.Fatalf("create failed: %v / %v", err, resp.Err())
		}
		if _, ok := s.Get("remote-1"); !ok {
			t.Error("expected paste in the server's store")
		}

		resp, err = srv.Delete(ctx, "/api/pastes/remote-1")
		if err != nil || resp.StatusCode != http.StatusNoContent || resp.IsJSON {
			t.Fatalf("delete failed: %v / %+v", err, resp)
		}

		resp, err = srv.Get(ctx, "/api/pastes/remote-1")
		if err != nil {
			t.Fatalf("expected no transport error, got %v", err)
		}
		if !errors.Is(resp.Err(), shared.ErrPasteNotFound) {
			t.Errorf("expected ErrPasteNotFound, got %v", resp.Err())
		}
	})
}
