package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"warbler/dto"
	"warbler/models"
	"warbler/monitoring"
	"warbler/repositories"
)

// UserHandler handles signup, login, profile and follow endpoints.
type UserHandler struct {
	Users    repositories.UserRepository
	Follows  repositories.FollowRepository
	Messages repositories.MessageRepository
	Sessions *SessionManager
}

func NewUserHandler(users repositories.UserRepository, follows repositories.FollowRepository,
	messages repositories.MessageRepository, sessions *SessionManager) *UserHandler {
	return &UserHandler{Users: users, Follows: follows, Messages: messages, Sessions: sessions}
}

func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	return uint(id), err == nil
}

// Signup registers a new user and logs them in.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	user, err := h.Users.Signup(requestData.Username, requestData.Email, requestData.Password, requestData.ImageURL)
	if err != nil {
		monitoring.RegisterFailure.WithLabelValues(reason(err)).Inc()
		writeError(w, err)
		return
	}

	if err := h.Sessions.Login(w, r, user.ID); err != nil {
		logrus.WithError(err).Error("session save failed")
	}
	monitoring.RegisterSuccess.Inc()
	writeJSON(w, http.StatusCreated, dto.FromUser(*user))
}

// Login authenticates by username and password. Unknown username and wrong
// password produce the same generic response.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	user, err := h.Users.Authenticate(requestData.Username, requestData.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		monitoring.LoginFailure.WithLabelValues("invalid credentials").Inc()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials."})
		return
	}

	if err := h.Sessions.Login(w, r, user.ID); err != nil {
		logrus.WithError(err).Error("session save failed")
	}
	monitoring.LoginSuccess.Inc()
	writeJSON(w, http.StatusOK, dto.FromUser(*user))
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "You have been successfully logged out."})
}

// ListUsers returns all users, or those matching the q username substring.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []dto.UserDTO
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		found, ferr := h.Users.Search(q)
		users, err = dto.FromUsers(found), ferr
	} else {
		all, aerr := h.Users.All()
		users, err = dto.FromUsers(all), aerr
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ShowUser returns a user profile with their recent messages.
func (h *UserHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}
	user, err := h.Users.ByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	messages, err := h.Messages.RecentByUser(id, repositories.FeedLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":     dto.FromUser(*user),
		"messages": dto.FromMessages(messages),
	})
}

func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, h.Follows.FollowingOf)
}

func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, h.Follows.FollowersOf)
}

func (h *UserHandler) edgeList(w http.ResponseWriter, r *http.Request, list func(uint) ([]models.User, error)) {
	if _, ok := h.Sessions.CurrentUserID(r); !ok {
		writeAnonymous(w)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}
	if _, err := h.Users.ByID(id); err != nil {
		writeError(w, err)
		return
	}
	users, err := list(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromUsers(users))
}

// Follow makes the logged-in user follow the user in the path.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	followID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}
	if err := h.Follows.Follow(currentID, followID); err != nil {
		writeError(w, err)
		return
	}
	monitoring.FollowsCreated.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// StopFollowing makes the logged-in user unfollow the user in the path.
func (h *UserHandler) StopFollowing(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	unfollowID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}
	if err := h.Follows.Unfollow(currentID, unfollowID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProfile edits only the fields present in the request body.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	var requestData struct {
		Username       *string `json:"username"`
		Email          *string `json:"email"`
		Password       *string `json:"password"`
		ImageURL       *string `json:"image_url"`
		HeaderImageURL *string `json:"header_image_url"`
		Bio            *string `json:"bio"`
		Location       *string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	user, err := h.Users.UpdateProfile(currentID, repositories.ProfileUpdate{
		Username:       requestData.Username,
		Email:          requestData.Email,
		Password:       requestData.Password,
		ImageURL:       requestData.ImageURL,
		HeaderImageURL: requestData.HeaderImageURL,
		Bio:            requestData.Bio,
		Location:       requestData.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromUser(*user))
}

// DeleteUser removes the logged-in user's account and everything it owns.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	currentID, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		writeAnonymous(w)
		return
	}
	h.Sessions.Logout(w, r)
	if err := h.Users.Delete(currentID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
