package v1

import (
	"errors"
	"io"
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Room for the text fields of the multipart form on top of the resume.
const formOverheadBytes = 1 << 20

type ApplicationHandler struct {
	appUC          domain.ApplicationUsecase
	maxResumeBytes int64
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase, maxResumeBytes int64, limit gin.HandlerFunc) {
	handler := &ApplicationHandler{appUC: appUC, maxResumeBytes: maxResumeBytes}

	apps := protected.Group("/application")
	{
		apps.POST("/post", limit, handler.Create)
		apps.GET("/jobseeker/getall", handler.ListAsJobSeeker)
		apps.GET("/employer/getall", handler.ListAsEmployer)
		apps.DELETE("/delete/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Apply for a job
// @Description  Multipart form with a PNG, JPG or WEBP resume (Job Seeker only)
// @Tags         application
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true  "Applicant name"
// @Param        email        formData  string  true  "Applicant email"
// @Param        coverLetter  formData  string  true  "Cover letter"
// @Param        phone        formData  string  true  "Phone"
// @Param        address      formData  string  true  "Address"
// @Param        jobId        formData  string  true  "Job ID"
// @Param        resume       formData  file    true  "Resume image"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /application/post [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	if h.maxResumeBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxResumeBytes+formOverheadBytes)
	}

	// Missing fields are reported by the usecase, after the resume checks.
	var in domain.ApplicationInput
	if err := c.ShouldBind(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.Validation("Resume file is too large"))
			return
		}
	}

	resume, err := h.readResume(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.PostApplication(c.Request.Context(), caller, in, resume)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application submitted!", gin.H{"application": app})
}

// readResume returns nil when no resume part was sent.
func (h *ApplicationHandler) readResume(c *gin.Context) (*domain.ResumeFile, error) {
	header, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.Validation("Resume file is too large")
		}
		return nil, nil
	}
	if h.maxResumeBytes > 0 && header.Size > h.maxResumeBytes {
		return nil, apperror.Validation("Resume file is too large")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ResumeFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ListAsJobSeeker godoc
// @Summary      Applications submitted by the caller
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /application/jobseeker/getall [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAsJobSeeker(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.appUC.ListApplicationsAsJobSeeker(c.Request.Context(), caller)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"applications": apps})
}

// ListAsEmployer godoc
// @Summary      Applications received by the caller
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /application/employer/getall [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAsEmployer(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.appUC.ListApplicationsAsEmployer(c.Request.Context(), caller)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"applications": apps})
}

// Delete godoc
// @Summary      Withdraw an application
// @Tags         application
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/delete/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.appUC.DeleteApplication(c.Request.Context(), caller, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted successfully!", nil)
}
