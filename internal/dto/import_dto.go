package dto

// ImportRowError describes a single rejected spreadsheet row. Row numbers are
// 1-based and include the header line, so the first data row is row 2.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkImportResponse summarizes a bulk catalog import.
type BulkImportResponse struct {
	RowsProcessed int              `json:"rows_processed"`
	Succeeded     int              `json:"succeeded"`
	Failed        int              `json:"failed"`
	Errors        []ImportRowError `json:"errors"`
}
