package logging

// Standardized field names for structured logging. Using these constants
// keeps log output consistent and easy to filter.
const (
	FieldFile    = "file_path"
	FieldSheet   = "sheet"
	FieldHeader  = "header"
	FieldRole    = "role"
	FieldRow     = "row"
	FieldRows    = "rows"
	FieldDropped = "dropped"
	FieldCount   = "count"
	FieldReason  = "reason"
	FieldFormat  = "format"
)
