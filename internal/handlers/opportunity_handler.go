package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"freshsales/internal/models"
	"freshsales/internal/services"
)

type OpportunityHandler struct {
	Service *services.OpportunityService
}

func NewOpportunityHandler(service *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{Service: service}
}

type createOpportunityRequest struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	ExpectedValue     *float64   `json:"expected_value"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	CustomerID        *int64     `json:"customer_id"`
	LeadID            *int64     `json:"lead_id"`
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	var req createOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opp := &models.Opportunity{
		Name:              req.Name,
		Description:       req.Description,
		ExpectedValue:     req.ExpectedValue,
		ExpectedCloseDate: req.ExpectedCloseDate,
		CustomerID:        req.CustomerID,
		LeadID:            req.LeadID,
	}
	if err := h.Service.Create(opp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, opp)
}

func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opp, err := h.Service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}

func (h *OpportunityHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	opps, err := h.Service.List(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opps)
}

func (h *OpportunityHandler) ListByStage(c *gin.Context) {
	stage, err := models.ParseStage(c.Param("stage"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opps, err := h.Service.ListByStage(stage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opps)
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opp, err := h.Service.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}

func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type changeStageRequest struct {
	Stage       string `json:"stage"`
	Probability *int   `json:"probability"`
}

// ChangeStage moves the opportunity through the pipeline; closing it as won
// also converts the source lead into a customer.
func (h *OpportunityHandler) ChangeStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req changeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opp, err := h.Service.ChangeStage(id, models.Stage(req.Stage), req.Probability)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}

func (h *OpportunityHandler) Forecast(c *gin.Context) {
	forecast, err := h.Service.Forecast()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}
