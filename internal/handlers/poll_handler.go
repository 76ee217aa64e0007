package handlers

import (
	"context"
	"errors"
	"net/http"

	"poll-service/internal/middleware"
	"poll-service/internal/models"
	"poll-service/internal/service"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	Service *service.PollService
}

func NewPollHandler(s *service.PollService) *PollHandler {
	return &PollHandler{Service: s}
}

// GetPoll serves the sanitized public view of a poll.
func (h *PollHandler) GetPoll(c *gin.Context) {
	poll, err := h.Service.GetPublicPoll(context.Background(), c.Param("id"))
	if errors.Is(err, service.ErrPollNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, poll)
}

func (h *PollHandler) ListPolls(c *gin.Context) {
	polls, err := h.Service.ListPublicPolls(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if polls == nil {
		polls = []models.Poll{}
	}
	c.JSON(http.StatusOK, polls)
}

func (h *PollHandler) CreatePoll(c *gin.Context) {
	var poll models.Poll
	if err := c.ShouldBindJSON(&poll); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if poll.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if err := h.Service.CreatePoll(context.Background(), &poll, middleware.CurrentUser(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, poll)
}

// GetOwnedPoll returns the creator's full view, access code and inactive
// questions included.
func (h *PollHandler) GetOwnedPoll(c *gin.Context) {
	poll, err := h.Service.GetOwnedPoll(context.Background(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}

func (h *PollHandler) UpdatePoll(c *gin.Context) {
	var req service.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.Service.UpdatePoll(context.Background(), c.Param("id"), middleware.CurrentUser(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}

func (h *PollHandler) DeletePoll(c *gin.Context) {
	if err := h.Service.DeletePoll(context.Background(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted"})
}

func (h *PollHandler) AddQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.Service.AddQuestion(context.Background(), c.Param("id"), middleware.CurrentUser(c), &question)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poll)
}

func (h *PollHandler) UpdateQuestion(c *gin.Context) {
	var patch service.QuestionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.Service.UpdateQuestion(context.Background(), c.Param("id"), c.Param("qid"), middleware.CurrentUser(c), &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}

func (h *PollHandler) AddChoice(c *gin.Context) {
	var choice models.Choice
	if err := c.ShouldBindJSON(&choice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.Service.AddChoice(context.Background(), c.Param("id"), c.Param("qid"), middleware.CurrentUser(c), &choice)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poll)
}

func (h *PollHandler) DeactivateChoice(c *gin.Context) {
	poll, err := h.Service.DeactivateChoice(context.Background(), c.Param("id"), c.Param("qid"), c.Param("cid"), middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}

// respondServiceError maps the shared service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPollNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the poll creator can do this"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
