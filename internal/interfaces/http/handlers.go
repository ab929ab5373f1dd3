package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/application/service"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"github.com/tripdesk/tripdesk/internal/report"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	requestService  service.RequestService
	workflowService service.WorkflowService
	catalogService  service.CatalogService
	exporter        *report.Exporter
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	requestService service.RequestService,
	workflowService service.WorkflowService,
	catalogService service.CatalogService,
	exporter *report.Exporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		requestService:  requestService,
		workflowService: workflowService,
		catalogService:  catalogService,
		exporter:        exporter,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Field   string      `json:"field,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListRequestsQuery represents query parameters for listing travel requests
type ListRequestsQuery struct {
	State      string `form:"state"`
	EmployeeID string `form:"employee_id"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// RefuseBody carries the refusal reason of the two-step refusal
type RefuseBody struct {
	Reason string `json:"reason"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// CreateRequest handles POST /api/requests
func (h *Handlers) CreateRequest(c *gin.Context) {
	actor := actorFrom(c)

	var input service.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}
	if input.EmployeeID == "" {
		input.EmployeeID = actor.ID
	}
	if input.EmployeeName == "" {
		input.EmployeeName = actor.Name
	}

	request, err := h.requestService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: request})
}

// ListRequests handles GET /api/requests
func (h *Handlers) ListRequests(c *gin.Context) {
	var query ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 20
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	requests, err := h.requestService.List(c.Request.Context(), actorFrom(c), port.RequestFilter{
		State:      query.State,
		EmployeeID: query.EmployeeID,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: requests})
}

// GetRequest handles GET /api/requests/:id
func (h *Handlers) GetRequest(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	request, err := h.requestService.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: request})
}

// UpdateRequest handles PUT /api/requests/:id
func (h *Handlers) UpdateRequest(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var input service.UpdateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	request, err := h.requestService.Update(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: request})
}

// DeactivateRequest handles DELETE /api/requests/:id
func (h *Handlers) DeactivateRequest(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	if err := h.requestService.Deactivate(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// GetHistory handles GET /api/requests/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	history, err := h.requestService.History(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: history})
}

// AttachMissionOrder handles POST /api/requests/:id/mission-order
func (h *Handlers) AttachMissionOrder(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "unreadable file upload"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "unreadable file upload"})
		return
	}

	if err := h.requestService.AttachMissionOrder(c.Request.Context(), actorFrom(c), id, fileHeader.Filename, content); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// GetMissionOrder handles GET /api/requests/:id/mission-order
func (h *Handlers) GetMissionOrder(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	content, filename, err := h.requestService.MissionOrder(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// Submit handles POST /api/requests/:id/submit
func (h *Handlers) Submit(c *gin.Context) {
	h.transition(c, h.workflowService.Submit)
}

// Approve handles POST /api/requests/:id/approve
func (h *Handlers) Approve(c *gin.Context) {
	h.transition(c, h.workflowService.Approve)
}

// Refuse handles POST /api/requests/:id/refuse. The two refusal steps run
// back to back: the pending check first, then the confirmation with the
// supplied reason.
func (h *Handlers) Refuse(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var body RefuseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	actor := actorFrom(c)
	pending, err := h.workflowService.BeginRefusal(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.workflowService.ConfirmRefusal(c.Request.Context(), actor, pending, body.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// Process handles POST /api/requests/:id/process
func (h *Handlers) Process(c *gin.Context) {
	h.transition(c, h.workflowService.Process)
}

// Complete handles POST /api/requests/:id/complete
func (h *Handlers) Complete(c *gin.Context) {
	h.transition(c, h.workflowService.Complete)
}

// Cancel handles POST /api/requests/:id/cancel
func (h *Handlers) Cancel(c *gin.Context) {
	h.transition(c, h.workflowService.Cancel)
}

// ResetToDraft handles POST /api/requests/:id/reset
func (h *Handlers) ResetToDraft(c *gin.Context) {
	h.transition(c, h.workflowService.ResetToDraft)
}

// ExportRequests handles GET /api/reports/requests.xlsx
func (h *Handlers) ExportRequests(c *gin.Context) {
	var query ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	if query.Limit <= 0 || query.Limit > 1000 {
		query.Limit = 1000
	}

	requests, err := h.requestService.List(c.Request.Context(), actorFrom(c), port.RequestFilter{
		State:      query.State,
		EmployeeID: query.EmployeeID,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	content, err := h.exporter.Export(c.Request.Context(), requests)
	if err != nil {
		h.logger.Errorw("Failed to export requests", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="travel-requests.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// CreateCity handles POST /api/cities
func (h *Handlers) CreateCity(c *gin.Context) {
	var city entity.City
	if err := c.ShouldBindJSON(&city); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.catalogService.CreateCity(c.Request.Context(), actorFrom(c), &city); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: city})
}

// ListCities handles GET /api/cities
func (h *Handlers) ListCities(c *gin.Context) {
	limit, offset := pagination(c)

	cities, err := h.catalogService.ListCities(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: cities})
}

// DeactivateCity handles DELETE /api/cities/:id
func (h *Handlers) DeactivateCity(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeactivateCity(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// CreateVehicle handles POST /api/vehicles
func (h *Handlers) CreateVehicle(c *gin.Context) {
	var vehicle entity.PoolVehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.catalogService.CreateVehicle(c.Request.Context(), actorFrom(c), &vehicle); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: vehicle})
}

// ListVehicles handles GET /api/vehicles
func (h *Handlers) ListVehicles(c *gin.Context) {
	limit, offset := pagination(c)

	vehicles, err := h.catalogService.ListVehicles(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: vehicles})
}

// DeactivateVehicle handles DELETE /api/vehicles/:id
func (h *Handlers) DeactivateVehicle(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeactivateVehicle(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// transition runs one workflow call that only needs the request ID
func (h *Handlers) transition(c *gin.Context, fn func(ctx context.Context, actor entity.ActorContext, id int64) error) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// requestID parses the :id path parameter
func (h *Handlers) requestID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
