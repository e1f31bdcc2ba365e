package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME at an empty directory and blanks CURLITE_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"TIMEOUT", "USER_AGENT", "HEADERS", "LOG_LEVEL", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "NO_COLOR"} {
		t.Setenv("CURLITE_"+k, "")
	}
	return home
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_GetPrintsBody(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "curlite/") {
			t.Errorf("User-Agent = %q, want curlite/<version>", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<h1>Hello, World!</h1>\n")
	}))
	defer server.Close()

	code, stdout, stderr := runCLI(t, server.URL+"/lab3.html")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if stdout != "<h1>Hello, World!</h1>\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "requesting URL") {
		t.Errorf("stderr = %q, want request log line", stderr)
	}
}

func TestRun_JSONPostSortsKeys(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	code, stdout, stderr := runCLI(t, "--log-level", "disabled", "--json", `{"userId": 5, "title": "World"}`, server.URL)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	want := "{\n  \"title\": \"World\",\n  \"userId\": 5\n}\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty with logging disabled", stderr)
	}
}

func TestRun_FormPost(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		if got := r.PostForm.Get("title"); got != "Hello World" {
			t.Errorf("title = %q, want Hello World", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	code, stdout, stderr := runCLI(t, "-X", "POST", "-d", "userId=1&title=Hello World", server.URL)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty body", stdout)
	}
}

func TestRun_HTTPErrorPrintsSnippet(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	}))
	defer server.Close()

	code, stdout, stderr := runCLI(t, "--log-level", "disabled", server.URL+"/lab4.html")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	want := "Error: Request failed with status code: 404\npage not found\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid ipv4", []string{"https://255.255.255.256"}, "Error: The URL contains an invalid IPv4 address.\n"},
		{"invalid ipv6", []string{"https://[...1]"}, "Error: The URL contains an invalid IPv6 address.\n"},
		{"invalid port", []string{"http://127.0.0.1:65536"}, "Error: The URL contains an invalid port number.\n"},
		{"invalid protocol", []string{"www.eecg.toronto.edu"}, "Error: The URL does not have a valid base protocol.\n"},
		{"malformed json", []string{"--json", "{invalid}", "https://dummyjson.com/posts/add"}, "Error: Invalid JSON: "},
		{"conflicting body", []string{"-d", "a=1", "--json", "{}", "http://example.com"}, "Error: -d and --json cannot be used together.\n"},
		{"unsupported method", []string{"-X", "DELETE", "http://example.com"}, "Error: Unsupported HTTP method: DELETE\n"},
		{"missing url", nil, "Error: accepts 1 arg(s), received 0\n"},
		{"missing config", []string{"--config", "/nonexistent/curlite.toml", "http://example.com"}, "Error: load config: "},
		{"bad log level", []string{"--log-level", "loud", "http://example.com"}, "Error: invalid config: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			// A later --log-level overrides this one.
			args := append([]string{"--log-level", "disabled"}, tt.args...)
			code, stdout, stderr := runCLI(t, args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.HasPrefix(stderr, tt.want) {
				t.Errorf("stderr = %q, want prefix %q", stderr, tt.want)
			}
		})
	}
}

func TestRun_NetworkError(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	code, _, stderr := runCLI(t, "--log-level", "disabled", url)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	want := "Error: Unable to connect to the server. Perhaps the network is offline or the server hostname cannot be resolved.\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_ConfigSources(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".curlite")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	toml := "headers = [\"X-From-File: yes\"]\nuser_agent = \"file-agent\"\nlog_level = \"disabled\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(home, ".env")
	if err := os.WriteFile(envFile, []byte("CURLITE_TIMEOUT=5s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CURLITE_USER_AGENT", "env-agent")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-From-File"); got != "yes" {
			t.Errorf("X-From-File = %q, want yes", got)
		}
		if got := r.Header.Get("User-Agent"); got != "flag-agent" {
			t.Errorf("User-Agent = %q, want flag-agent", got)
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	code, stdout, stderr := runCLI(t, "--env-file", envFile, "--user-agent", "flag-agent", server.URL)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if stdout != "ok" {
		t.Errorf("stdout = %q, want ok", stdout)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty (file disables logging)", stderr)
	}
}
