package models

// OperationKind tags a snapshot with the mutation that produced it.
type OperationKind string

const (
	OpReorderSections OperationKind = "reorder-sections"
	OpReorderItems    OperationKind = "reorder-items"
	OpEdit            OperationKind = "edit"
	OpDelete          OperationKind = "delete"
	OpDuplicate       OperationKind = "duplicate"
)
