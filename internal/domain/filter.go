package domain

// WorkOrderFilter narrows work order listings.
// This is a domain model that mirrors the store's list options
// but belongs to the domain layer for proper separation of concerns.
type WorkOrderFilter struct {
	Plate    *string
	OpenOnly bool
	Limit    int
}
