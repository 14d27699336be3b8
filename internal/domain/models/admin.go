package models

import "time"

// AdminActionType names an audited mutation.
type AdminActionType string

const (
	ActionUserCreate          AdminActionType = "user_create"
	ActionUserUpdate          AdminActionType = "user_update"
	ActionUserActivate        AdminActionType = "user_activate"
	ActionUserDeactivate      AdminActionType = "user_deactivate"
	ActionUserLock            AdminActionType = "user_lock"
	ActionUserUnlock          AdminActionType = "user_unlock"
	ActionKnowledgeCreate     AdminActionType = "knowledge_create"
	ActionKnowledgeUpdate     AdminActionType = "knowledge_update"
	ActionKnowledgeArchive    AdminActionType = "knowledge_archive"
	ActionKnowledgePublish    AdminActionType = "knowledge_publish"
	ActionSafetyRuleCreate    AdminActionType = "safety_rule_create"
	ActionSafetyRuleUpdate    AdminActionType = "safety_rule_update"
	ActionRecordLock          AdminActionType = "record_lock"
	ActionRecordUnlock        AdminActionType = "record_unlock"
	ActionSettingUpdate       AdminActionType = "setting_update"
	ActionNotificationSend    AdminActionType = "notification_send"
	ActionFeedItemCreate      AdminActionType = "feed_item_create"
	ActionFeedItemUpdate      AdminActionType = "feed_item_update"
	ActionNutritionRuleCreate AdminActionType = "nutrition_rule_create"
	ActionNutritionRuleUpdate AdminActionType = "nutrition_rule_update"
	ActionDataSeed            AdminActionType = "data_seed"
)

// AuditEntry is one immutable audit log record.
type AuditEntry struct {
	ID          string          `bson:"id" json:"id"`
	AdminID     string          `bson:"admin_id" json:"admin_id"`
	AdminName   string          `bson:"admin_name" json:"admin_name"`
	ActorRole   Role            `bson:"actor_role,omitempty" json:"actor_role,omitempty"`
	ActionType  AdminActionType `bson:"action_type" json:"action_type"`
	TargetType  string          `bson:"target_type" json:"target_type"`
	TargetID    string          `bson:"target_id" json:"target_id"`
	BeforeValue any             `bson:"before_value,omitempty" json:"before_value,omitempty"`
	AfterValue  any             `bson:"after_value,omitempty" json:"after_value,omitempty"`
	Reason      string          `bson:"reason,omitempty" json:"reason,omitempty"`
	IPAddress   string          `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	Timestamp   time.Time       `bson:"timestamp" json:"timestamp"`
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	ActionType AdminActionType
	TargetType string
	AdminID    string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// SafetyRuleInput is the admin-editable part of a biosafety rule.
type SafetyRuleInput struct {
	DiseaseName         string    `bson:"disease_name" json:"disease_name" binding:"required"`
	SpeciesAffected     []Species `bson:"species_affected" json:"species_affected"`
	PPEInstructions     string    `bson:"ppe_instructions" json:"ppe_instructions"`
	IsolationProtocols  string    `bson:"isolation_protocols" json:"isolation_protocols"`
	MilkMeatRestriction string    `bson:"milk_meat_restriction" json:"milk_meat_restriction"`
	DisposalProcedures  string    `bson:"disposal_procedures" json:"disposal_procedures"`
	GovernmentReporting string    `bson:"government_reporting" json:"government_reporting"`
	IsActive            bool      `bson:"is_active" json:"is_active"`
}

// SafetyRule is a versioned disease biosafety rule.
type SafetyRule struct {
	ID string `bson:"id" json:"id"`

	SafetyRuleInput `bson:",inline"`

	Version   int       `bson:"version" json:"version"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NotificationInput is the payload of an admin broadcast.
type NotificationInput struct {
	Title         string     `bson:"title" json:"title" binding:"required"`
	Message       string     `bson:"message" json:"message" binding:"required"`
	TargetRoles   []Role     `bson:"target_roles" json:"target_roles"`
	TargetRegions []string   `bson:"target_regions" json:"target_regions"`
	Priority      string     `bson:"priority" json:"priority"`
	ExpiresAt     *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

// Notification is a stored system notification. Empty TargetRoles reaches everyone.
type Notification struct {
	ID string `bson:"id" json:"id"`

	NotificationInput `bson:",inline"`

	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ReadCount int       `bson:"read_count" json:"read_count"`
}

// SystemSetting is a key/value runtime setting.
type SystemSetting struct {
	Key         string    `bson:"key" json:"key"`
	Value       string    `bson:"value" json:"value"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Alert is a dashboard notice shown to vets and admins.
type Alert struct {
	Type     string     `json:"type"`
	Severity string     `json:"severity"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	TargetID string     `json:"target_id,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// AlertList is the response shape of the alert endpoints.
type AlertList struct {
	Alerts []Alert `json:"alerts"`
	Total  int     `json:"total"`
}

// ActivityItem is one line of a user's activity feed.
type ActivityItem struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// UserActivity is the admin view of what a user has recorded.
type UserActivity struct {
	User     string         `json:"user"`
	Role     Role           `json:"role"`
	Activity []ActivityItem `json:"activity"`
}

// UserDetail is a user with role-specific profile and counters.
type UserDetail struct {
	User       *User            `json:"user"`
	VetProfile *VetProfile      `json:"vet_profile,omitempty"`
	Stats      map[string]int64 `json:"stats,omitempty"`
}

// RoleActivity is one row of the user activity report.
type RoleActivity struct {
	Role        Role  `bson:"_id" json:"role"`
	Count       int64 `bson:"count" json:"count"`
	ActiveCount int64 `bson:"active_count" json:"active_count"`
}

// DiseaseCount is one row of the disease surveillance report.
type DiseaseCount struct {
	Diagnosis string   `bson:"_id" json:"diagnosis"`
	Count     int64    `bson:"count" json:"count"`
	Villages  []string `bson:"villages" json:"villages"`
}

// Report wraps an admin report payload.
type Report[T any] struct {
	ReportType  string    `json:"report_type"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        []T       `json:"data"`
}

// AdminDashboard is the admin overview.
type AdminDashboard struct {
	Users struct {
		TotalFarmers     int64 `json:"total_farmers"`
		TotalParavets    int64 `json:"total_paravets"`
		TotalVets        int64 `json:"total_vets"`
		PendingApprovals int64 `json:"pending_approvals"`
	} `json:"users"`
	Animals struct {
		Total int64 `json:"total"`
	} `json:"animals"`
	Institutions struct {
		Active              int64 `json:"active"`
		PendingVerification int64 `json:"pending_verification"`
	} `json:"institutions"`
	KnowledgeCenter struct {
		TotalEntries  int64 `json:"total_entries"`
		PendingDrafts int64 `json:"pending_drafts"`
	} `json:"knowledge_center"`
	Safety struct {
		ActiveRules    int64 `json:"active_rules"`
		ZoonoticAlerts int64 `json:"zoonotic_alerts"`
	} `json:"safety"`
	Activity struct {
		OPDCasesToday     int64 `json:"opd_cases_today"`
		VaccinationsToday int64 `json:"vaccinations_today"`
	} `json:"activity"`
}
