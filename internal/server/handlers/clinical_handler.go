package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/service/interpretation"
	"github.com/mamadbah2/livestockcare/internal/service/knowledge"
	"github.com/mamadbah2/livestockcare/internal/service/reporting"
)

// ClinicalHandler serves diagnostics, the knowledge center and the
// diagnostic PDF report.
type ClinicalHandler struct {
	diagnostics *interpretation.Service
	knowledge   *knowledge.Service
	reports     *reporting.Service
	logger      *zap.Logger
}

// NewClinicalHandler constructs the diagnostics and knowledge HTTP adapter.
func NewClinicalHandler(diagnostics *interpretation.Service, knowledge *knowledge.Service, reports *reporting.Service, logger *zap.Logger) *ClinicalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClinicalHandler{diagnostics: diagnostics, knowledge: knowledge, reports: reports, logger: logger}
}

// RecordDiagnostic interprets and stores a test result.
func (h *ClinicalHandler) RecordDiagnostic(c *gin.Context) {
	var in models.DiagnosticInput
	if !bind(c, &in) {
		return
	}
	diag, err := h.diagnostics.Record(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, diag)
}

func (h *ClinicalHandler) ListDiagnostics(c *gin.Context) {
	filter := interpretation.Filter{
		AnimalID:     c.Query("animal_id"),
		TestCategory: models.TestCategory(c.Query("test_category")),
	}
	diags, err := h.diagnostics.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, diags)
}

func (h *ClinicalHandler) GetDiagnostic(c *gin.Context) {
	diag, err := h.diagnostics.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, diag)
}

// DiagnosticPDF streams the diagnostic report as a PDF attachment.
func (h *ClinicalHandler) DiagnosticPDF(c *gin.Context) {
	id := c.Param("id")
	body, err := h.reports.DiagnosticReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	pdfAttachment(c, "diagnostic_report_"+id+".pdf", body)
}

func (h *ClinicalHandler) ListKnowledge(c *gin.Context) {
	filter := models.KnowledgeFilter{
		TestCategory: models.TestCategory(c.Query("test_category")),
		Species:      models.Species(c.Query("species")),
		Status:       models.KnowledgeStatus(c.Query("status")),
	}
	entries, err := h.knowledge.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ClinicalHandler) GetKnowledge(c *gin.Context) {
	entry, err := h.knowledge.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ClinicalHandler) KnowledgeHistory(c *gin.Context) {
	versions, err := h.knowledge.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *ClinicalHandler) CreateKnowledge(c *gin.Context) {
	var in models.ReferenceInput
	if !bind(c, &in) {
		return
	}
	entry, err := h.knowledge.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ClinicalHandler) UpdateKnowledge(c *gin.Context) {
	var in models.ReferenceInput
	if !bind(c, &in) {
		return
	}
	entry, err := h.knowledge.Update(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ClinicalHandler) PublishKnowledge(c *gin.Context) {
	if err := h.knowledge.Publish(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Knowledge entry published")
}

// ArchiveKnowledge retires an entry. Entries are never removed.
func (h *ClinicalHandler) ArchiveKnowledge(c *gin.Context) {
	if err := h.knowledge.Archive(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Knowledge entry archived")
}

// SeedKnowledge loads the bundled reference ranges when the center is empty.
func (h *ClinicalHandler) SeedKnowledge(c *gin.Context) {
	result, err := h.knowledge.SeedKnowledge(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
