package model

// ImportRowError describes why a single spreadsheet row was rejected.
type ImportRowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

// BulkImportResult summarizes a catalog import run. All-or-nothing: a
// single bad row fails the whole file so admins can fix and re-upload.
type BulkImportResult struct {
	Success   bool             `json:"success"`
	TotalRows int              `json:"totalRows"`
	Imported  int              `json:"imported"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}

// Maximum rows accepted per import file.
const BulkImportMaxRows = 1000
