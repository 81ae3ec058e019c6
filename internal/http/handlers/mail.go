package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-backend/internal/http/response"
	"github.com/mechgenz/mechgenz-backend/internal/services"
)

type MailHandler struct {
	notifications services.NotificationService
}

func NewMailHandler(notifications services.NotificationService) *MailHandler {
	return &MailHandler{notifications: notifications}
}

// POST /api/send-reply
// body: { "to_email": "...", "to_name": "...", "reply_message": "...", "original_message": "..." }
func (mh *MailHandler) SendReply(c *gin.Context) {
	var req services.ReplyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	receipt, err := mh.notifications.SendReply(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Reply sent successfully",
		"email_id": receipt.MessageID,
		"customer": gin.H{
			"name":  receipt.ToName,
			"email": receipt.ToEmail,
		},
	})
}
