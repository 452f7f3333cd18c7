package helperAuth

// Key c.Locals yang diisi middleware AuthJWT.
const (
	LocUserID = "user_id"    // string uuid
	LocRole   = "userRole"   // role utama (string)
	LocRoles  = "roles"      // []string
	LocClaims = "jwt_claims" // jwt.MapClaims mentah
)
