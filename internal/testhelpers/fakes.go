package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
)

// FakeWger serves /exercise/ with n exercises per requested category, plus
// one image and no videos per exercise. Exercise ids are category*100+i.
func FakeWger(t *testing.T, perCategory int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/exercise/", func(w http.ResponseWriter, r *http.Request) {
		category, _ := strconv.Atoi(r.URL.Query().Get("category"))
		results := make([]map[string]interface{}, 0, perCategory)
		for i := 1; i <= perCategory && category > 0; i++ {
			results = append(results, map[string]interface{}{
				"id":          category*100 + i,
				"name":        fmt.Sprintf("Exercise %d-%d", category, i),
				"description": "<p>Move well</p>",
				"category":    map[string]interface{}{"id": category, "name": fmt.Sprintf("Category %d", category)},
				"muscles":     []map[string]interface{}{{"id": 1, "name": "Biceps"}},
				"equipment":   []map[string]interface{}{{"id": 7, "name": "none"}},
			})
		}
		writeJSON(w, map[string]interface{}{"count": len(results), "results": results})
	})
	mux.HandleFunc("/exerciseimage/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("exercise")
		writeJSON(w, map[string]interface{}{"results": []map[string]string{{"image": "https://wger.test/img/" + id + ".png"}}})
	})
	mux.HandleFunc("/exercisevideo/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]interface{}{"results": []map[string]string{}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// FakeLLM answers every chat completion with reply and counts requests
type FakeLLM struct {
	*httptest.Server
	reply atomic.Value
	calls atomic.Int64
}

// NewFakeLLM starts an OpenAI-compatible chat completions server
func NewFakeLLM(t *testing.T, reply string) *FakeLLM {
	t.Helper()

	f := &FakeLLM{}
	f.reply.Store(reply)
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": f.reply.Load().(string)}},
			},
		})
	}))
	t.Cleanup(f.Server.Close)
	return f
}

// SetReply changes the content returned by later requests
func (f *FakeLLM) SetReply(reply string) {
	f.reply.Store(reply)
}

// Calls returns how many completions were requested
func (f *FakeLLM) Calls() int {
	return int(f.calls.Load())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
