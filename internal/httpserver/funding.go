package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-companion/internal/domain"
)

func getFundingHandler(svc FundingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requestIDParam(c)
		if !ok {
			return
		}
		request, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, request)
	}
}

func fundingTransitionHandler(svc FundingService, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requestIDParam(c)
		if !ok {
			return
		}

		var request *domain.FundingRequest
		var err error
		switch action {
		case "approve":
			request, err = svc.Approve(c.Request.Context(), id)
		case "reject":
			request, err = svc.Reject(c.Request.Context(), id)
		case "admin-approve":
			request, err = svc.AdminApprove(c.Request.Context(), id)
		case "fund":
			request, err = svc.MarkFunded(c.Request.Context(), id)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, request)
	}
}

type postMessageRequest struct {
	Author string `json:"author"`
	Body   string `json:"body" binding:"required"`
}

func listMessagesHandler(svc FundingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requestIDParam(c)
		if !ok {
			return
		}
		messages, err := svc.Messages(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

func postMessageHandler(svc FundingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requestIDParam(c)
		if !ok {
			return
		}
		var req postMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		message, err := svc.PostMessage(c.Request.Context(), id, req.Author, req.Body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, message)
	}
}

func requestIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return 0, false
	}
	return id, true
}
