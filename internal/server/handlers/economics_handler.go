package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/service/calculators"
	"github.com/mamadbah2/livestockcare/internal/service/gva"
	"github.com/mamadbah2/livestockcare/internal/service/ration"
	"github.com/mamadbah2/livestockcare/internal/service/reporting"
)

// EconomicsHandler serves GVA, ration balancing, the feed catalog and the
// guest calculators.
type EconomicsHandler struct {
	gva     *gva.Service
	ration  *ration.Service
	reports *reporting.Service
	logger  *zap.Logger
}

// NewEconomicsHandler constructs the economics HTTP adapter.
func NewEconomicsHandler(gvaSvc *gva.Service, rationSvc *ration.Service, reports *reporting.Service, logger *zap.Logger) *EconomicsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EconomicsHandler{gva: gvaSvc, ration: rationSvc, reports: reports, logger: logger}
}

func (h *EconomicsHandler) GVASettings(c *gin.Context) {
	settings, err := h.gva.Settings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateGVASettings stores a partial override. Omitted keys keep their defaults.
func (h *EconomicsHandler) UpdateGVASettings(c *gin.Context) {
	var override models.GVASettingsOverride
	if !bind(c, &override) {
		return
	}
	settings, err := h.gva.UpdateSettings(c.Request.Context(), principal(c), override)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "GVA settings updated", "settings": settings})
}

func (h *EconomicsHandler) CalculateGVA(c *gin.Context) {
	var in models.GVAInput
	if !bind(c, &in) {
		return
	}
	report, err := h.gva.Calculate(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *EconomicsHandler) GVAReports(c *gin.Context) {
	reports, err := h.gva.Reports(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *EconomicsHandler) GVAReport(c *gin.Context) {
	report, err := h.gva.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *EconomicsHandler) GVAReportPDF(c *gin.Context) {
	id := c.Param("id")
	body, err := h.reports.GVAReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	pdfAttachment(c, "gva_report_"+id+".pdf", body)
}

func (h *EconomicsHandler) CalculateRation(c *gin.Context) {
	var req models.RationRequest
	if !bind(c, &req) {
		return
	}
	calc, err := h.ration.Calculate(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (h *EconomicsHandler) RationCalculations(c *gin.Context) {
	calcs, err := h.ration.Calculations(c.Request.Context(), principal(c), models.Species(c.Query("species")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, calcs)
}

// FeedItems lists the catalog. is_active narrows to active or inactive items.
func (h *EconomicsHandler) FeedItems(c *gin.Context) {
	filter := models.FeedFilter{
		Category: models.FeedCategory(c.Query("category")),
		Species:  models.Species(c.Query("species")),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "is_active must be true or false"})
			return
		}
		filter.IsActive = &active
	}
	items, err := h.ration.FeedItems(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *EconomicsHandler) CreateFeedItem(c *gin.Context) {
	var in models.FeedInput
	if !bind(c, &in) {
		return
	}
	item, err := h.ration.CreateFeedItem(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *EconomicsHandler) UpdateFeedItem(c *gin.Context) {
	var in models.FeedInput
	if !bind(c, &in) {
		return
	}
	item, err := h.ration.UpdateFeedItem(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *EconomicsHandler) NutritionRules(c *gin.Context) {
	rules, err := h.ration.NutritionRules(c.Request.Context(), models.Species(c.Query("species")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *EconomicsHandler) CreateNutritionRule(c *gin.Context) {
	var in models.NutritionRuleInput
	if !bind(c, &in) {
		return
	}
	rule, err := h.ration.CreateNutritionRule(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *EconomicsHandler) UpdateNutritionRule(c *gin.Context) {
	var in models.NutritionRuleInput
	if !bind(c, &in) {
		return
	}
	rule, err := h.ration.UpdateNutritionRule(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// SeedNutrition loads the bundled feed catalog and nutrition rules.
func (h *EconomicsHandler) SeedNutrition(c *gin.Context) {
	result, err := h.ration.SeedCatalog(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EconomicsHandler) AreaCalculator(c *gin.Context) {
	var in models.AreaInput
	if !bind(c, &in) {
		return
	}
	c.JSON(http.StatusOK, calculators.Area(in))
}

func (h *EconomicsHandler) InterestCalculator(c *gin.Context) {
	var in models.InterestInput
	if !bind(c, &in) {
		return
	}
	c.JSON(http.StatusOK, calculators.Interest(in))
}
