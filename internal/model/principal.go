package model

// Role names carried in the JWT "role" claim.
const (
    RoleCustomer = "CUSTOMER"
    RoleOperator = "OPERATOR"
)

// Principal is the acting caller of an operation.  Every engine
// operation takes it explicitly instead of reading ambient session
// state.  The zero value is the anonymous guest principal.
type Principal struct {
    UserID uint64 // 0 for guests
    Role   string // empty for guests
}

// Anonymous reports whether the principal is an unauthenticated guest.
func (p Principal) Anonymous() bool { return p.UserID == 0 }

// Operator reports whether the principal may act on bookings it does
// not own.
func (p Principal) Operator() bool { return p.Role == RoleOperator }
