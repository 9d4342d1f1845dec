package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"tamamali_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateConfigTakesEffect(t *testing.T) {
	oldSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the replaced endpoint")
	}))
	defer oldSrv.Close()

	var gotModel string
	newSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer newSrv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: oldSrv.URL, Model: "old-model"})
	svc.UpdateConfig(config.AIConfig{BaseURL: newSrv.URL, Model: "new-model"})

	reply, err := svc.Chat(context.Background(), []AIChatMessage{{Role: "user", Content: "hello"}})
	assert.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, "new-model", gotModel)
}

func TestChatSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "m"})

	_, err := svc.Chat(context.Background(), []AIChatMessage{{Role: "user", Content: "hello"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
