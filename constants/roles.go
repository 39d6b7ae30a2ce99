package constants

const (
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
	RoleTechnician = "technician"
	RoleChief      = "chief"
)
