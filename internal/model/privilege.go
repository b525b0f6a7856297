package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "inbound:save"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Save Inbound Batch"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:approve", Name: "Approve User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Stock base catalog
	{Code: "basecode:view", Name: "View Stock Base"},
	{Code: "basecode:create", Name: "Create Stock Base"},
	{Code: "basecode:update", Name: "Update Stock Base"},
	{Code: "basecode:delete", Name: "Delete Stock Base"},
	// Inbound ledger
	{Code: "inbound:view", Name: "View Inbound"},
	{Code: "inbound:save", Name: "Save Inbound Batch"},
	// Outbound ledger
	{Code: "outbound:view", Name: "View Outbound"},
	{Code: "outbound:save", Name: "Save Outbound Batch"},
	{Code: "outbound:complete", Name: "Complete Outbound"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
