package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/job/getall", handler.List)

	jobs := protected.Group("/job")
	{
		jobs.POST("/post", handler.Create)
		jobs.GET("/getmyjobs", handler.ListMine)
		jobs.PUT("/update/:id", handler.Update)
		jobs.DELETE("/delete/:id", handler.Delete)
		jobs.GET("/:id", handler.GetDetails)
	}
}

// List godoc
// @Summary      List open jobs
// @Description  All jobs that are not expired
// @Tags         job
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job/getall [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"jobs": jobs})
}

// Create godoc
// @Summary      Post a job
// @Description  Either fixedSalary or salaryFrom and salaryTo, never both (Employer only)
// @Tags         job
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job/post [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	// A Job Seeker gets the role error even with a malformed body.
	var in domain.JobInput
	if err := c.ShouldBindJSON(&in); err != nil && caller.Role == domain.RoleEmployer {
		c.Error(apperror.Validation("Please provide full job details."))
		return
	}

	job, err := h.jobUC.PostJob(c.Request.Context(), caller, in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job Posted Successfully!", gin.H{"job": job})
}

// ListMine godoc
// @Summary      Jobs posted by the caller
// @Tags         job
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job/getmyjobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, err := h.jobUC.ListMyJobs(c.Request.Context(), caller)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"myJobs": jobs})
}

// Update godoc
// @Summary      Update a job
// @Description  Applies the fields present in the body (Employer only)
// @Tags         job
// @Accept       json
// @Produce      json
// @Param        id   path      string           true  "Job ID"
// @Param        job  body      domain.JobPatch  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/update/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil && caller.Role == domain.RoleEmployer {
		c.Error(apperror.Validation("Invalid job update."))
		return
	}

	if err := h.jobUC.UpdateJob(c.Request.Context(), caller, c.Param("id"), patch); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job Updated!", nil)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Applications for the job are kept (Employer only)
// @Tags         job
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/delete/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	caller, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), caller, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job Deleted!", nil)
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         job
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"job": job})
}
