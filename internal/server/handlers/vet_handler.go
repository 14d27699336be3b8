package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/service/registers"
	"github.com/mamadbah2/livestockcare/internal/service/reporting"
)

// caseRegister is the CRUD surface shared by every clinical register.
type caseRegister[T any] interface {
	Create(ctx context.Context, actor models.Principal, in T) (*T, error)
	List(ctx context.Context, actor models.Principal, filter models.CaseFilter) ([]T, error)
	Get(ctx context.Context, actor models.Principal, id string) (*T, error)
	Update(ctx context.Context, actor models.Principal, id string, in T) (*T, error)
}

// VetHandler serves the veterinarian's profile, institutions, clinical
// registers, alerts and dashboards.
type VetHandler struct {
	registers *registers.Service
	reports   *reporting.Service
	logger    *zap.Logger
}

// NewVetHandler constructs the veterinarian HTTP adapter.
func NewVetHandler(regs *registers.Service, reports *reporting.Service, logger *zap.Logger) *VetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VetHandler{registers: regs, reports: reports, logger: logger}
}

// RegisterCaseRoutes mounts create, list, get and update for every register
// under g.
func (h *VetHandler) RegisterCaseRoutes(g *gin.RouterGroup) {
	mountRegister[models.ClinicalCase](g, "/opd", h.registers.OPD, h.logger)
	mountRegister[models.ClinicalCase](g, "/ipd", h.registers.IPD, h.logger)
	mountRegister[models.SurgicalCase](g, "/surgical", h.registers.Surgical, h.logger)
	mountRegister[models.GynaecologyCase](g, "/gynaecology", h.registers.Gynaecology, h.logger)
	mountRegister[models.CastrationCase](g, "/castration", h.registers.Castration, h.logger)
}

func mountRegister[T any](g *gin.RouterGroup, path string, reg caseRegister[T], logger *zap.Logger) {
	g.POST(path, func(c *gin.Context) {
		var in T
		if !bind(c, &in) {
			return
		}
		out, err := reg.Create(c.Request.Context(), principal(c), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET(path, func(c *gin.Context) {
		from, to, ok := dateRangeQuery(c)
		if !ok {
			return
		}
		filter := models.CaseFilter{
			DateFrom: from,
			DateTo:   to,
			Species:  models.Species(c.Query("species")),
			Result:   models.CaseResult(c.Query("result")),
		}
		out, err := reg.List(c.Request.Context(), principal(c), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET(path+"/:id", func(c *gin.Context) {
		out, err := reg.Get(c.Request.Context(), principal(c), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.PUT(path+"/:id", func(c *gin.Context) {
		var in T
		if !bind(c, &in) {
			return
		}
		out, err := reg.Update(c.Request.Context(), principal(c), c.Param("id"), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}

func (h *VetHandler) CreateProfile(c *gin.Context) {
	var in models.VetProfileInput
	if !bind(c, &in) {
		return
	}
	profile, err := h.registers.CreateProfile(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile answers null when the caller has no profile yet.
func (h *VetHandler) GetProfile(c *gin.Context) {
	profile, err := h.registers.Profile(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *VetHandler) UpdateProfile(c *gin.Context) {
	var in models.VetProfileInput
	if !bind(c, &in) {
		return
	}
	profile, err := h.registers.UpdateProfile(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *VetHandler) CreateInstitution(c *gin.Context) {
	var in models.InstitutionInput
	if !bind(c, &in) {
		return
	}
	inst, err := h.registers.CreateInstitution(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (h *VetHandler) ListInstitutions(c *gin.Context) {
	insts, err := h.registers.Institutions(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, insts)
}

func (h *VetHandler) GetInstitution(c *gin.Context) {
	inst, err := h.registers.Institution(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (h *VetHandler) Alerts(c *gin.Context) {
	alerts, err := h.registers.Alerts(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *VetHandler) DetailedStats(c *gin.Context) {
	dash, err := h.registers.Dashboard(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *VetHandler) Stats(c *gin.Context) {
	stats, err := h.reports.VetStats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// FarmerStats is the farmer's own dashboard.
func (h *VetHandler) FarmerStats(c *gin.Context) {
	stats, err := h.reports.FarmerStats(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
