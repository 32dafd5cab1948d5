package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeStash answers catalog GraphQL requests by root field. Tags live in an
// in-memory set so create and destroy calls are observable.
type fakeStash struct {
	mu        sync.Mutex
	tags      map[string]string
	nextTagID int
	created   []string
	responses map[string]string
}

func newFakeStash(tagNames ...string) *fakeStash {
	f := &fakeStash{tags: map[string]string{}, responses: map[string]string{}}
	for _, name := range tagNames {
		f.addTag(name)
	}
	return f
}

func (f *fakeStash) addTag(name string) string {
	f.nextTagID++
	id := fmt.Sprintf("%d", f.nextTagID)
	f.tags[name] = id
	return id
}

func (f *fakeStash) createdTags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.created...)
}

func (f *fakeStash) tagCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tags)
}

func (f *fakeStash) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var data string
	switch {
	case strings.Contains(payload.Query, "findTags("):
		data = f.findTags(payload.Variables)
	case strings.Contains(payload.Query, "tagCreate("):
		input, _ := payload.Variables["input"].(map[string]any)
		name, _ := input["name"].(string)
		f.created = append(f.created, name)
		data = fmt.Sprintf(`{"tagCreate":{"id":%q}}`, f.addTag(name))
	case strings.Contains(payload.Query, "tagDestroy("):
		input, _ := payload.Variables["input"].(map[string]any)
		id, _ := input["id"].(string)
		for name, tagID := range f.tags {
			if tagID == id {
				delete(f.tags, name)
			}
		}
		data = `{"tagDestroy":true}`
	default:
		for field, body := range f.responses {
			if strings.Contains(payload.Query, field+"(") || strings.Contains(payload.Query, field+" {") {
				data = body
				break
			}
		}
	}
	if data == "" {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"unexpected query"}]}`))
		return
	}
	_, _ = w.Write([]byte(`{"data":` + data + `}`))
}

func (f *fakeStash) findTags(vars map[string]any) string {
	filter, _ := vars["filter"].(map[string]any)
	q, _ := filter["q"].(string)
	id, ok := f.tags[q]
	if !ok {
		return `{"findTags":{"tags":[]}}`
	}
	return fmt.Sprintf(`{"findTags":{"tags":[{"id":%q,"name":%q,"aliases":[]}]}}`, id, q)
}

// emptyCatalog registers empty answers for every enumeration the url and
// fragment modes issue.
func (f *fakeStash) emptyCatalog() {
	f.responses["listSceneScrapers"] = `{"listSceneScrapers":[]}`
	f.responses["listGalleryScrapers"] = `{"listGalleryScrapers":[]}`
	f.responses["listPerformerScrapers"] = `{"listPerformerScrapers":[]}`
	f.responses["findScenes"] = `{"findScenes":{"count":0,"scenes":[]}}`
	f.responses["findGalleries"] = `{"findGalleries":{"galleries":[]}}`
	f.responses["findMovies"] = `{"findMovies":{"movies":[]}}`
}

type cliTestEnv struct {
	baseDir    string
	stateDir   string
	configPath string
	stash      *fakeStash
}

func setupCLITestEnv(t *testing.T, stash *fakeStash) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	server := httptest.NewServer(stash)
	t.Cleanup(server.Close)

	env := &cliTestEnv{
		baseDir:    base,
		stateDir:   filepath.Join(base, "state"),
		configPath: filepath.Join(base, "config.toml"),
		stash:      stash,
	}
	content := fmt.Sprintf(`[stash]
url = %q

[scrape]
delay = 0

[paths]
state_dir = %q
log_dir = %q

[logging]
level = "error"
`, server.URL, env.stateDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeJSON(t *testing.T, raw string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
