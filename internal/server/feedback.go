package server

import (
	stderrors "errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
	"github.com/theheadmen/coffeeloyalty/internal/errors"
	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func (ls *ServerSystem) userExists(r *http.Request, userID uint) error {
	var user dbconnector.User
	if err := ls.Storage.GetUserByUserID(r.Context(), userID, &user); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (ls *ServerSystem) CreateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}
	if err := ls.userExists(r, req.UserID); err != nil {
		ls.serviceError(w, err)
		return
	}

	feedback := dbconnector.Feedback{
		UserID: req.UserID,
		Score:  req.Score,
		Text:   req.Text,
	}
	if err := ls.Storage.AddFeedback(r.Context(), &feedback); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toFeedbackResponse(&feedback))
}

func (ls *ServerSystem) ListFeedbacksHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100)

	var feedbacks []dbconnector.Feedback
	if err := ls.Storage.GetFeedbacks(r.Context(), limit, offset, &feedbacks); err != nil {
		ls.serviceError(w, err)
		return
	}

	responses := make([]models.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		responses[i] = toFeedbackResponse(&feedbacks[i])
	}
	ls.writeJSON(w, http.StatusOK, responses)
}

func (ls *ServerSystem) CreateIdeaHandler(w http.ResponseWriter, r *http.Request) {
	var req models.IdeaRequest
	if !ls.decodeAndValidate(w, r, &req) {
		return
	}
	if err := ls.userExists(r, req.UserID); err != nil {
		ls.serviceError(w, err)
		return
	}

	idea := dbconnector.Idea{
		UserID: req.UserID,
		Text:   req.Text,
	}
	if err := ls.Storage.AddIdea(r.Context(), &idea); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, toIdeaResponse(&idea))
}

func (ls *ServerSystem) ListIdeasHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100)

	var ideas []dbconnector.Idea
	if err := ls.Storage.GetIdeas(r.Context(), limit, offset, &ideas); err != nil {
		ls.serviceError(w, err)
		return
	}

	responses := make([]models.IdeaResponse, len(ideas))
	for i := range ideas {
		responses[i] = toIdeaResponse(&ideas[i])
	}
	ls.writeJSON(w, http.StatusOK, responses)
}
