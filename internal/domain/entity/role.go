package entity

// User roles. Identity itself is managed externally; the role arrives as a
// JWT claim and gates route access.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSales      = "sales"
	RolePurchase   = "purchase"
	RoleInventory  = "inventory"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)
