package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/dto"
	"warbler/monitoring"
	"warbler/repositories"
)

// MessageHandler handles message posting, lookup, deletion and the feeds.
type MessageHandler struct {
	Messages repositories.MessageRepository
	Feeds    repositories.FeedRepository
	Likes    repositories.LikeRepository
	Users    repositories.UserRepository
	Sessions *SessionManager
}

func NewMessageHandler(messages repositories.MessageRepository, feeds repositories.FeedRepository,
	likes repositories.LikeRepository, users repositories.UserRepository, sessions *SessionManager) *MessageHandler {
	return &MessageHandler{Messages: messages, Feeds: feeds, Likes: likes, Users: users, Sessions: sessions}
}

// CreateMessage posts a message authored by the logged-in user.
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	var requestData struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	message, err := h.Messages.Post(currentID, requestData.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	monitoring.MessagesPosted.Inc()
	writeJSON(w, http.StatusCreated, dto.FromMessage(*message))
}

func (h *MessageHandler) ShowMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid Message ID"})
		return
	}
	message, err := h.Messages.ByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessage(*message))
}

// DeleteMessage removes a message; only the author may do this.
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid Message ID"})
		return
	}
	if err := h.Messages.Delete(id, currentID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MessagesPerUser returns a user's recent messages, newest first. The "no"
// query parameter caps the count, defaulting to 100.
func (h *MessageHandler) MessagesPerUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	user, err := h.Users.ByUsername(username)
	if err != nil {
		writeError(w, err)
		return
	}

	noMsgs := repositories.FeedLimit
	if noMsgsStr := r.URL.Query().Get("no"); noMsgsStr != "" {
		if num, err := strconv.Atoi(noMsgsStr); err == nil && num > 0 {
			noMsgs = num
		}
	}

	messages, err := h.Messages.RecentByUser(user.ID, noMsgs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessages(messages))
}

// Home returns the composed timeline for the logged-in user along with the
// ids of messages they have liked. Anonymous callers get the empty anonymous
// view.
func (h *MessageHandler) Home(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"anonymous": true,
			"messages":  []dto.MessageDTO{},
		})
		return
	}

	messages, err := h.Feeds.HomeFeed(currentID)
	if err != nil {
		writeError(w, err)
		return
	}
	likedIDs, err := h.Likes.LikedMessageIDs(currentID)
	if err != nil {
		writeError(w, err)
		return
	}
	if likedIDs == nil {
		likedIDs = []uint{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"anonymous": false,
		"messages":  dto.FromMessages(messages),
		"likes":     likedIDs,
	})
}

// PublicTimeline returns the newest messages by anyone.
func (h *MessageHandler) PublicTimeline(w http.ResponseWriter, r *http.Request) {
	noMsgs := repositories.FeedLimit
	if noMsgsStr := r.URL.Query().Get("no"); noMsgsStr != "" {
		if num, err := strconv.Atoi(noMsgsStr); err == nil && num > 0 {
			noMsgs = num
		}
	}
	messages, err := h.Feeds.PublicFeed(noMsgs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessages(messages))
}
