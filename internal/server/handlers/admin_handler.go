package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/service/admin"
)

// AdminHandler serves the admin console, the public safety-rule lookup and
// the caller's notification feed.
type AdminHandler struct {
	svc    *admin.Service
	logger *zap.Logger
}

// NewAdminHandler constructs the admin HTTP adapter.
func NewAdminHandler(svc *admin.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{svc: svc, logger: logger}
}

func pick(flag bool, yes, no string) string {
	if flag {
		return yes
	}
	return no
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Alerts(c *gin.Context) {
	alerts, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *AdminHandler) Users(c *gin.Context) {
	filter := models.UserFilter{
		Role:   models.Role(c.Query("role")),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	users, err := h.svc.Users(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) User(c *gin.Context) {
	detail, err := h.svc.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SetUserStatus takes ?is_active=true|false and an optional reason.
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	active, ok := boolQuery(c, "is_active")
	if !ok {
		return
	}
	if err := h.svc.SetUserStatus(c.Request.Context(), principal(c), c.Param("id"), active, c.Query("reason")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "User "+pick(active, "activated", "deactivated")+" successfully")
}

func (h *AdminHandler) LockUser(c *gin.Context) {
	locked, ok := boolQuery(c, "locked")
	if !ok {
		return
	}
	if err := h.svc.LockUser(c.Request.Context(), principal(c), c.Param("id"), locked, c.Query("reason")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "User "+pick(locked, "locked", "unlocked")+" successfully")
}

func (h *AdminHandler) UserActivity(c *gin.Context) {
	activity, err := h.svc.UserActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (h *AdminHandler) VerifyVetRegistration(c *gin.Context) {
	verified, ok := boolQuery(c, "verified")
	if !ok {
		return
	}
	if err := h.svc.VerifyVetRegistration(c.Request.Context(), principal(c), c.Param("id"), verified, c.Query("remarks")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Vet registration "+pick(verified, "verified", "rejected"))
}

func (h *AdminHandler) SetCertificatePrivileges(c *gin.Context) {
	enabled, ok := boolQuery(c, "enabled")
	if !ok {
		return
	}
	if err := h.svc.SetCertificatePrivileges(c.Request.Context(), principal(c), c.Param("id"), enabled); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Certificate privileges "+pick(enabled, "enabled", "disabled"))
}

func (h *AdminHandler) VerifyInstitution(c *gin.Context) {
	verified, ok := boolQuery(c, "verified")
	if !ok {
		return
	}
	if err := h.svc.VerifyInstitution(c.Request.Context(), principal(c), c.Param("id"), verified, c.Query("remarks")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Institution "+pick(verified, "verified", "verification revoked"))
}

func (h *AdminHandler) CreateSafetyRule(c *gin.Context) {
	var in models.SafetyRuleInput
	if !bind(c, &in) {
		return
	}
	rule, err := h.svc.CreateSafetyRule(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *AdminHandler) SafetyRules(c *gin.Context) {
	rules, err := h.svc.SafetyRules(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *AdminHandler) UpdateSafetyRule(c *gin.Context) {
	var in models.SafetyRuleInput
	if !bind(c, &in) {
		return
	}
	rule, err := h.svc.UpdateSafetyRule(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// SafetyRuleFor is public. It answers null when no active rule matches.
func (h *AdminHandler) SafetyRuleFor(c *gin.Context) {
	rule, err := h.svc.SafetyRuleFor(c.Request.Context(), c.Param("disease"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	filter := models.AuditFilter{
		ActionType: models.AdminActionType(c.Query("action_type")),
		TargetType: c.Query("target_type"),
		AdminID:    c.Query("admin_id"),
		DateFrom:   from,
		DateTo:     to,
	}
	logs, err := h.svc.AuditLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
}

func (h *AdminHandler) CreateNotification(c *gin.Context) {
	var in models.NotificationInput
	if !bind(c, &in) {
		return
	}
	n, err := h.svc.CreateNotification(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *AdminHandler) Notifications(c *gin.Context) {
	list, err := h.svc.Notifications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MyNotifications lists the notifications addressed to the caller's role.
func (h *AdminHandler) MyNotifications(c *gin.Context) {
	list, err := h.svc.NotificationsFor(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) Settings(c *gin.Context) {
	settings, err := h.svc.Settings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSetting takes the new value as ?value= or as {"value": "..."}.
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	value, ok := c.GetQuery("value")
	if !ok {
		var body struct {
			Value *string `json:"value" binding:"required"`
		}
		if !bind(c, &body) {
			return
		}
		value = *body.Value
	}
	key := c.Param("key")
	if err := h.svc.UpdateSetting(c.Request.Context(), principal(c), key, value); err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Setting '"+key+"' updated")
}

func (h *AdminHandler) LockRecord(c *gin.Context) {
	locked, ok := boolQuery(c, "locked")
	if !ok {
		return
	}
	err := h.svc.LockRecord(c.Request.Context(), principal(c), c.Param("type"), c.Param("id"), locked, c.Query("reason"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	message(c, "Record "+pick(locked, "locked", "unlocked")+" successfully")
}

func (h *AdminHandler) UserActivityReport(c *gin.Context) {
	report, err := h.svc.UserActivityReport(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) DiseaseSurveillanceReport(c *gin.Context) {
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	report, err := h.svc.DiseaseSurveillanceReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
