package entity

// UserRole is the single supply-chain role a participant acts under.
type UserRole string

const (
	RoleManufacturer UserRole = "Manufacturer"
	RoleDistributor  UserRole = "Distributor"
	RoleRetailer     UserRole = "Retailer"
	RoleCustomer     UserRole = "Customer"
)

// Roles lists every valid role in custody order.
var Roles = []UserRole{RoleManufacturer, RoleDistributor, RoleRetailer, RoleCustomer}

func (r UserRole) Valid() bool {
	switch r {
	case RoleManufacturer, RoleDistributor, RoleRetailer, RoleCustomer:
		return true
	}
	return false
}

func (r UserRole) String() string { return string(r) }

// NextCustodian returns the only role a holder of r may hand a product to.
// Retailers and customers cannot transfer, so ok is false for them.
func (r UserRole) NextCustodian() (next UserRole, ok bool) {
	switch r {
	case RoleManufacturer:
		return RoleDistributor, true
	case RoleDistributor:
		return RoleRetailer, true
	}
	return "", false
}
