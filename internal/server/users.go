package server

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/id"
	"github.com/maple-budget/maple/internal/model"
)

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		s.fail(w, r, model.ValidationErrors{{Field: "email", Message: "A valid email is required"}})
		return
	}

	u := model.User{
		ID:        id.New(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: s.now().UTC(),
	}
	if err := s.deps.Users.CreateUser(r.Context(), u); err != nil {
		s.fail(w, r, err)
		return
	}
	_ = s.deps.Activity.Record(activity.Entry{Actor: u.Email, Action: "user.create", Details: "Created user " + u.Email, RecordID: u.ID})
	s.respond(w, http.StatusCreated, u, "User created")
}
