package domain

// Credential is the login record. The register number doubles as the user id
// carried on tickets and claims.
type Credential struct {
	Register     int64
	Username     string
	PasswordHash string
}

// Employee is the organizational record behind a credential, denormalized
// onto tickets at open time for visibility rules.
type Employee struct {
	Register int64
	Name     string
	Position string
	Manager  string
}

// ProfileConfig resolves a position to its role and workflow slot ids. A zero
// approver/treatment id means the role holds no such slot.
type ProfileConfig struct {
	Position    string
	Role        Role
	ApproverID  int64
	TreatmentID int64
}
