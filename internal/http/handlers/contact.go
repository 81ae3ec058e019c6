package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	"github.com/mechgenz/mechgenz-backend/internal/http/response"
	"github.com/mechgenz/mechgenz-backend/internal/services"
)

type ContactHandler struct {
	submissions services.SubmissionService
}

func NewContactHandler(submissions services.SubmissionService) *ContactHandler {
	return &ContactHandler{submissions: submissions}
}

type contactRequest struct {
	Name    string            `json:"name"`
	Phone   string            `json:"phone"`
	Email   string            `json:"email"`
	Message string            `json:"message"`
	Extra   map[string]string `json:"extra"`
}

// POST /api/contact
// Accepts JSON or multipart/form-data; attachments ride in "files" parts.
func (ch *ContactHandler) Submit(c *gin.Context) {
	var input services.SubmitInput

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		parsed, err := ch.parseMultipart(c)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		input = *parsed
	} else {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		input = services.SubmitInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Message: req.Message,
			Extra:   req.Extra,
		}
	}

	sub, err := ch.submissions.Submit(c.Request.Context(), input, services.SubmitMeta{
		SourceIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Thank you for contacting MECHGENZ. We will get back to you soon.",
		"submission_id": sub.ID.String(),
		"timestamp":     sub.SubmittedAt.Format(time.RFC3339),
	})
}

func (ch *ContactHandler) parseMultipart(c *gin.Context) (*services.SubmitInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	input := &services.SubmitInput{Extra: map[string]string{}}
	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "name":
			input.Name = values[0]
		case "phone":
			input.Phone = values[0]
		case "email":
			input.Email = values[0]
		case "message":
			input.Message = values[0]
		default:
			input.Extra[key] = values[0]
		}
	}

	for _, fh := range form.File["files"] {
		uf, err := readFormFile(fh)
		if err != nil {
			return nil, err
		}
		input.Files = append(input.Files, *uf)
	}
	return input, nil
}

func readFormFile(fh *multipart.FileHeader) (*services.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &services.UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// GET /api/submissions?limit&skip&status&search
func (ch *ContactHandler) List(c *gin.Context) {
	params := repos.SubmissionListParams{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		params.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("skip", "0")); err == nil {
		params.Skip = v
	}

	items, total, err := ch.submissions.List(c.Request.Context(), params)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": items,
		"total_count": total,
		"limit":       params.Limit,
		"skip":        params.Skip,
	})
}

// GET /api/submissions/:id
func (ch *ContactHandler) Get(c *gin.Context) {
	sub, err := ch.submissions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submission": sub})
}

// PUT|PATCH /api/submissions/:id/status
// body: { "status": "new" | "in_progress" | "completed" | "archived" }
func (ch *ContactHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := ch.submissions.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission status updated"})
}

// DELETE /api/submissions/:id
func (ch *ContactHandler) Delete(c *gin.Context) {
	if err := ch.submissions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission deleted"})
}

// GET /api/submissions/:id/file/:filename
func (ch *ContactHandler) DownloadFile(c *gin.Context) {
	att, err := ch.submissions.Attachment(c.Request.Context(), c.Param("id"), c.Param("filename"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if att.ContentType != "" {
		c.Header("Content-Type", att.ContentType)
	}
	c.FileAttachment(att.Path, att.OriginalName)
}

// GET /api/stats
func (ch *ContactHandler) Stats(c *gin.Context) {
	stats, err := ch.submissions.Stats(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}
