package bark_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/infra/bark"
)

func TestNotifier_Notify(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.Method).Equal(http.MethodPost)
		gt.V(t, r.URL.Path).Equal("/device-key")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"code":200,"message":"success"}`))
	}))
	defer srv.Close()

	n := bark.New()
	err := n.Notify(context.Background(), &model.Notification{
		Endpoint: srv.URL + "/device-key",
		Title:    "GitHub project owner/name updated",
		Body:     "Release: v2.0, published at: 2024-05-01T10:00:00Z",
		Group:    "Github",
		Icon:     "https://example.com/icon.png",
		URL:      "https://github.com/owner/name/releases/tag/v2.0",
	})
	gt.NoError(t, err)

	gt.V(t, got["title"]).Equal("GitHub project owner/name updated")
	gt.V(t, got["body"]).Equal("Release: v2.0, published at: 2024-05-01T10:00:00Z")
	gt.V(t, got["group"]).Equal("Github")
	gt.V(t, got["icon"]).Equal("https://example.com/icon.png")
	_, hasURL := got["url"]
	gt.V(t, hasURL).Equal(false)
}

func TestNotifier_Notify_OmitsEmptyIcon(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	n := bark.New(bark.WithReleaseURL(true))
	gt.NoError(t, n.Notify(context.Background(), &model.Notification{
		Endpoint: srv.URL,
		Title:    "t",
		Body:     "b",
		Group:    "g",
		URL:      "https://github.com/owner/name/releases/tag/v1",
	}))

	_, hasIcon := got["icon"]
	gt.V(t, hasIcon).Equal(false)
	gt.V(t, got["url"]).Equal("https://github.com/owner/name/releases/tag/v1")
}

func TestNotifier_Notify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := bark.New().Notify(context.Background(), &model.Notification{Endpoint: srv.URL, Title: "t"})
	gt.Error(t, err)
	gt.V(t, goerr.HasTag(err, types.ErrTagNetwork)).Equal(true)
}

func TestNotifier_Notify_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	n := bark.New(bark.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	err := n.Notify(context.Background(), &model.Notification{Endpoint: srv.URL, Title: "t"})
	gt.Error(t, err)
}
