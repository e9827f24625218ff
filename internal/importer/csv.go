// Package importer translates the training catalog to and from its tabular
// exchange format.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
)

// CatalogColumns is the fixed column order of the catalog exchange format.
var CatalogColumns = []string{
	"title",
	"type",
	"category",
	"description",
	"duration_hours",
	"validity_months",
	"is_required",
	"compliance_standard",
	"provider_name",
	"cost",
	"currency",
}

// Row is one parsed spreadsheet line. Line numbers are 1-based and include
// the header, so the first data row is line 2.
type Row struct {
	Line    int
	Request dto.CatalogCreateRequest
	Err     error
}

// CatalogTemplate renders the import template: the header plus two example
// rows, one internal and one external course, to guide correct formatting.
func CatalogTemplate() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(CatalogColumns)
	_ = w.Write([]string{"Forklift Safety", "internal", "safety", "Annual forklift refresher", "4", "12", "true", "OSHA 1910.178", "", "", ""})
	_ = w.Write([]string{"First Aid Certification", "external", "health", "Certified first aid course", "8", "24", "true", "", "Red Cross Training Co", "250.00", "USD"})
	w.Flush()

	return buf.Bytes()
}

// ParseCatalog reads the tabular format into row entries. Malformed cells are
// reported per row so one bad line never aborts the batch.
func ParseCatalog(reader io.Reader) ([]Row, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := index["title"]; !ok {
		return nil, fmt.Errorf("header is missing the title column")
	}

	var rows []Row
	line := 1
	for {
		record, err := r.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			rows = append(rows, Row{Line: line, Err: fmt.Errorf("malformed row: %v", err)})
			continue
		}

		rows = append(rows, parseRow(line, record, index))
	}

	return rows, nil
}

func parseRow(line int, record []string, index map[string]int) Row {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := Row{Line: line}
	row.Request = dto.CatalogCreateRequest{
		Title:              cell("title"),
		Type:               strings.ToLower(cell("type")),
		Category:           cell("category"),
		Description:        cell("description"),
		ComplianceStandard: cell("compliance_standard"),
		ProviderName:       cell("provider_name"),
		Cost:               cell("cost"),
		Currency:           cell("currency"),
	}

	if raw := cell("duration_hours"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			row.Err = fmt.Errorf("invalid duration_hours %q", raw)
			return row
		}
		row.Request.DurationHours = value
	}

	if raw := cell("validity_months"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			row.Err = fmt.Errorf("invalid validity_months %q", raw)
			return row
		}
		row.Request.ValidityMonths = value
	}

	if raw := cell("is_required"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			row.Err = fmt.Errorf("invalid is_required %q", raw)
			return row
		}
		row.Request.IsRequired = value
	}

	return row
}

// WriteCatalog renders catalog entries back into the tabular format.
func WriteCatalog(entries []models.CatalogEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CatalogColumns); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		provider := ""
		if entry.ProviderName != nil {
			provider = *entry.ProviderName
		}
		cost := ""
		if entry.CostCents != nil {
			cost = dto.FormatCostCents(*entry.CostCents)
		}
		record := []string{
			entry.Title,
			entry.Type,
			entry.Category,
			entry.Description,
			strconv.Itoa(entry.DurationHours),
			strconv.Itoa(entry.ValidityMonths),
			strconv.FormatBool(entry.IsRequired),
			entry.ComplianceStandard,
			provider,
			cost,
			entry.Currency,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
