package handlers

import (
	"context"
	"errors"
	"net/http"

	"poll-service/internal/middleware"
	"poll-service/internal/models"
	"poll-service/internal/service"
	"poll-service/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubmissionHandler struct {
	Service *service.SubmissionService
}

func NewSubmissionHandler(s *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Service: s}
}

// Submit handles POST /api/v1/poll/submit. Validation problems come back
// as one itemized list; access-code failures map to 403, everything else
// invalid to 400.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req models.SubmitPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SubmitPollResponse{
			Message:          "Invalid request format",
			ValidationErrors: []string{err.Error()},
		})
		return
	}

	sub, err := h.Service.Submit(context.Background(), &req)
	if err != nil {
		var subErr *validation.SubmissionError
		switch {
		case errors.Is(err, service.ErrPollNotFound):
			c.JSON(http.StatusNotFound, models.SubmitPollResponse{
				Message:          "Poll not found",
				ValidationErrors: []string{},
			})
		case errors.As(err, &subErr):
			status := http.StatusBadRequest
			if subErr.AccessDenied {
				status = http.StatusForbidden
			}
			c.JSON(status, models.SubmitPollResponse{
				Message:          subErr.Error(),
				ValidationErrors: subErr.Errors,
			})
		default:
			c.JSON(http.StatusInternalServerError, models.SubmitPollResponse{
				Message:          "Failed to save submission",
				ValidationErrors: []string{},
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.SubmitPollResponse{
		IsSuccessful:     true,
		Message:          "Submission received",
		SubmissionID:     sub.ID,
		SubmittedAt:      &sub.SubmittedAt,
		ValidationErrors: []string{},
	})
}

// ListSubmissions returns a poll's submissions to its creator.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	pollID := c.Param("id")
	userID := middleware.CurrentUser(c)

	subs, err := h.Service.ListSubmissions(context.Background(), pollID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if subs == nil {
		subs = []models.PollSubmission{}
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	pollID := c.Param("id")
	subID := c.Param("sid")
	userID := middleware.CurrentUser(c)

	sub, err := h.Service.GetSubmission(context.Background(), pollID, subID, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
