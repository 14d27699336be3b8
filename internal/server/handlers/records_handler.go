package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/service/records"
)

// RecordsHandler serves animals and their vaccination, deworming and
// breeding logs.
type RecordsHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewRecordsHandler constructs the records HTTP adapter.
func NewRecordsHandler(svc *records.Service, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

func (h *RecordsHandler) CreateAnimal(c *gin.Context) {
	var in models.Animal
	if !bind(c, &in) {
		return
	}
	animal, err := h.svc.CreateAnimal(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

func (h *RecordsHandler) ListAnimals(c *gin.Context) {
	animals, err := h.svc.Animals(c.Request.Context(), principal(c), models.Species(c.Query("species")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animals)
}

func (h *RecordsHandler) GetAnimal(c *gin.Context) {
	animal, err := h.svc.Animal(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

func (h *RecordsHandler) UpdateAnimal(c *gin.Context) {
	var in models.Animal
	if !bind(c, &in) {
		return
	}
	animal, err := h.svc.UpdateAnimal(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

func (h *RecordsHandler) DeleteAnimal(c *gin.Context) {
	if err := h.svc.DeleteAnimal(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Animal deleted successfully")
}

func (h *RecordsHandler) CreateVaccination(c *gin.Context) {
	createEvent(c, h.logger, h.svc.RecordVaccination)
}

func (h *RecordsHandler) ListVaccinations(c *gin.Context) {
	listEvents(c, h.logger, h.svc.Vaccinations)
}

func (h *RecordsHandler) CreateDeworming(c *gin.Context) {
	createEvent(c, h.logger, h.svc.RecordDeworming)
}

func (h *RecordsHandler) ListDeworming(c *gin.Context) {
	listEvents(c, h.logger, h.svc.Dewormings)
}

func (h *RecordsHandler) CreateBreeding(c *gin.Context) {
	createEvent(c, h.logger, h.svc.RecordBreeding)
}

func (h *RecordsHandler) ListBreeding(c *gin.Context) {
	listEvents(c, h.logger, h.svc.Breedings)
}

func createEvent[T any](c *gin.Context, logger *zap.Logger, create func(context.Context, models.Principal, T) (*T, error)) {
	var in T
	if !bind(c, &in) {
		return
	}
	out, err := create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func listEvents[T any](c *gin.Context, logger *zap.Logger, list func(context.Context, models.Principal, string) ([]T, error)) {
	out, err := list(c.Request.Context(), principal(c), c.Query("animal_id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
