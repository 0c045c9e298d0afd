package handlers

import (
	"net/http"

	"warbler/dto"
	"warbler/monitoring"
	"warbler/repositories"
)

// LikeHandler handles the like toggle and liked-message listings.
type LikeHandler struct {
	Likes    repositories.LikeRepository
	Users    repositories.UserRepository
	Sessions *SessionManager
}

func NewLikeHandler(likes repositories.LikeRepository, users repositories.UserRepository, sessions *SessionManager) *LikeHandler {
	return &LikeHandler{Likes: likes, Users: users, Sessions: sessions}
}

// ToggleLike flips the logged-in user's like on the message in the path and
// reports which state resulted.
func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	messageID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid Message ID"})
		return
	}
	state, err := h.Likes.Toggle(currentID, messageID)
	if err != nil {
		writeError(w, err)
		return
	}
	monitoring.LikesToggled.WithLabelValues(string(state)).Inc()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(state)})
}

// LikedMessages lists the messages the user in the path has liked.
func (h *LikeHandler) LikedMessages(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sessions.CurrentUserID(r); !ok {
		writeAnonymous(w)
		return
	}
	userID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}
	if _, err := h.Users.ByID(userID); err != nil {
		writeError(w, err)
		return
	}
	messages, err := h.Likes.LikedMessages(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMessages(messages))
}
