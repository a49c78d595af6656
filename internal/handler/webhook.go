package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/model"
	"github.com/Morrowga/discordbot/internal/notify"
)

const maxCommits = 5

// WebhookHandler accepts push-event webhooks from GitHub and GitLab,
// normalizes them into one PushEvent shape at the boundary, and forwards
// the rendered notification to the git channel. Non-push events and
// malformed payloads are acknowledged with 200 and produce no output.
type WebhookHandler struct {
	dc         ChatSender
	gitChannel string
	log        *zap.Logger
}

func NewWebhookHandler(dc ChatSender, gitChannel string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{dc: dc, gitChannel: gitChannel, log: log}
}

// RegisterRoutes registers the webhook routes on the given mux.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhook/github", h.HandleGitHub)
	mux.HandleFunc("POST /webhook/gitlab", h.HandleGitLab)
}

// githubPushPayload is the provider-native GitHub push shape. It never
// leaves this package.
type githubPushPayload struct {
	Ref        string `json:"ref"`
	Repository struct {
		FullName string `json:"full_name"`
		HTMLURL  string `json:"html_url"`
	} `json:"repository"`
	Pusher struct {
		Name string `json:"name"`
	} `json:"pusher"`
	Commits []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
		URL     string `json:"url"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"commits"`
}

// HandleGitHub handles GitHub webhook deliveries.
func (h *WebhookHandler) HandleGitHub(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-GitHub-Event") != "push" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var payload githubPushPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Warn("malformed github payload", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	event := model.PushEvent{
		Provider:      "github",
		Repository:    orUnknown(payload.Repository.FullName),
		Branch:        branchFromRef(payload.Ref),
		PusherName:    orUnknown(payload.Pusher.Name),
		RepositoryURL: payload.Repository.HTMLURL,
	}
	for _, c := range payload.Commits {
		event.Commits = append(event.Commits, model.Commit{
			ID:      c.ID,
			Message: orUnknown(c.Message),
			Author:  orUnknown(c.Author.Name),
			URL:     c.URL,
		})
	}

	h.forward(w, &event)
}

// gitlabPushPayload is the provider-native GitLab push shape.
type gitlabPushPayload struct {
	ObjectKind string `json:"object_kind"`
	Ref        string `json:"ref"`
	UserName   string `json:"user_name"`
	Project    struct {
		PathWithNamespace string `json:"path_with_namespace"`
		WebURL            string `json:"web_url"`
	} `json:"project"`
	Commits []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
		URL     string `json:"url"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"commits"`
}

// HandleGitLab handles GitLab webhook deliveries.
func (h *WebhookHandler) HandleGitLab(w http.ResponseWriter, r *http.Request) {
	var payload gitlabPushPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Warn("malformed gitlab payload", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	if payload.ObjectKind != "push" {
		w.WriteHeader(http.StatusOK)
		return
	}

	event := model.PushEvent{
		Provider:      "gitlab",
		Repository:    orUnknown(payload.Project.PathWithNamespace),
		Branch:        branchFromRef(payload.Ref),
		PusherName:    orUnknown(payload.UserName),
		RepositoryURL: payload.Project.WebURL,
	}
	for _, c := range payload.Commits {
		event.Commits = append(event.Commits, model.Commit{
			ID:      c.ID,
			Message: orUnknown(c.Message),
			Author:  orUnknown(c.Author.Name),
			URL:     c.URL,
		})
	}

	h.forward(w, &event)
}

// forward sends the notification for a normalized push. A push with no
// commits is acknowledged silently.
func (h *WebhookHandler) forward(w http.ResponseWriter, event *model.PushEvent) {
	if len(event.Commits) == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}
	if len(event.Commits) > maxCommits {
		event.Commits = event.Commits[:maxCommits]
	}

	if err := h.dc.SendNotification(h.gitChannel, notify.RenderPush(event)); err != nil {
		h.log.Warn("send push notification",
			zap.String("provider", event.Provider),
			zap.String("repository", event.Repository),
			zap.Error(err))
	}
	w.WriteHeader(http.StatusOK)
}

func branchFromRef(ref string) string {
	branch := strings.TrimPrefix(ref, "refs/heads/")
	return orUnknown(branch)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
