package domain

// CatalogEntry maps a (role, motive/submotive) pair to the workflow a new
// ticket must follow. Owned by configuration; read-only to the lifecycle
// engine.
type CatalogEntry struct {
	Role              Role
	TicketType        string
	Submotive         string
	MotiveSubmotive   string
	Form              FormDocument
	ApprovalSequence  Sequence
	TreatmentSequence Sequence
}
