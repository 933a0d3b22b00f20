package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mkalinins/commportal/internal/portal"
	"github.com/mkalinins/commportal/internal/server/content"
)

// ContentStore is the slice of the content store the handlers need.
type ContentStore interface {
	News(ctx context.Context) []portal.NewsItem
	ChatRooms(ctx context.Context) []portal.ChatRoom
	Messages(ctx context.Context, roomID string) ([]portal.Message, error)
	PostMessage(ctx context.Context, roomID string, author portal.User, text string) (portal.Message, error)
	Meetings(ctx context.Context) []portal.Meeting
	Discussions(ctx context.Context) []portal.Discussion
	Documents(ctx context.Context) []portal.Document
}

type ContentHandler struct {
	store ContentStore
}

func NewContentHandler(store ContentStore) *ContentHandler {
	return &ContentHandler{store: store}
}

// News handles GET /api/news.
func (h *ContentHandler) News(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.News(r.Context()))
}

// ChatRooms handles GET /api/chat/rooms.
func (h *ContentHandler) ChatRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ChatRooms(r.Context()))
}

// Messages handles GET /api/chat/rooms/{roomID}/messages.
func (h *ContentHandler) Messages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	msgs, err := h.store.Messages(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, content.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

type postMessageRequest struct {
	Content string `json:"content"`
}

// PostMessage handles POST /api/chat/rooms/{roomID}/messages.
func (h *ContentHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "message content is empty")
		return
	}

	roomID := chi.URLParam(r, "roomID")
	msg, err := h.store.PostMessage(r.Context(), roomID, user, req.Content)
	if err != nil {
		if errors.Is(err, content.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// Meetings handles GET /api/board/meetings.
func (h *ContentHandler) Meetings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Meetings(r.Context()))
}

// Discussions handles GET /api/board/discussions.
func (h *ContentHandler) Discussions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Discussions(r.Context()))
}

// Documents handles GET /api/admin/documents.
func (h *ContentHandler) Documents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Documents(r.Context()))
}
