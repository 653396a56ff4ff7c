package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/application/service"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
)

// JobHandler handles employee job HTTP requests. Staff only ever see their
// own jobs; the service enforces that.
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) List(c *gin.Context) {
	employeeID, ok := queryUUID(c, "employee_id")
	if !ok {
		return
	}
	status, ok := queryEnum(c, "status", enum.ParseJobStatus)
	if !ok {
		return
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), actorFrom(c), repository.JobFilter{
		Pagination: paginationFrom(c),
		EmployeeID: employeeID,
		Status:     status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Jobs retrieved successfully", result)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req request.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), actorFrom(c), &service.CreateJobInput{
		EmployeeID:  req.EmployeeID,
		InvoiceID:   req.InvoiceID,
		Title:       req.Title,
		Description: req.Description,
		PayAmount:   req.PayAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Job created successfully", job)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "job")
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job retrieved successfully", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "job")
	if !ok {
		return
	}

	var req request.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), actorFrom(c), &service.UpdateJobInput{
		ID:          id,
		EmployeeID:  req.EmployeeID,
		InvoiceID:   req.InvoiceID,
		Title:       req.Title,
		Description: req.Description,
		PayAmount:   req.PayAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job updated successfully", job)
}

// SetStatus moves a job between PENDING and READY. PAID is reached only by
// recording a payment.
func (h *JobHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "job")
	if !ok {
		return
	}

	var req request.JobStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.SetStatus(c.Request.Context(), actorFrom(c), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job status updated successfully", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "job")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job deleted successfully", nil)
}
