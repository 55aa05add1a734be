package response

import (
	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope and the documented shape of every body.
// Success bodies carry their resource under its own top-level key
// (user, job, jobs, myJobs, application, applications, token).
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success sends {success: true, message?, <fields>...}.
func Success(c *gin.Context, code int, message string, fields gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

// Error sends {success: false, message}.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	})
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = string(domain.KeyRequestID)
