package ingest

import "npldisk/internal/reader"

// ColumnMappingInfo records how one observed header resolved to a canonical
// column. Column is the zero-based position in the sheet's header row.
type ColumnMappingInfo struct {
	CanonicalID  string         `json:"canonical_id"`
	DisplayName  string         `json:"display_name"`
	SourceName   string         `json:"source_name"`
	Column       int            `json:"column"`
	Required     bool           `json:"required"`
	DataType     ColumnDataType `json:"data_type"`
	FromTemplate bool           `json:"from_template"`
}

// SheetMappingInfo is one classified sheet with its resolved columns.
type SheetMappingInfo struct {
	SheetName string
	SheetType SheetType
	Columns   []ColumnMappingInfo
	byID      map[string]int
}

// Lookup returns the mapping for a canonical column id, if resolved.
func (s *SheetMappingInfo) Lookup(canonicalID string) (ColumnMappingInfo, bool) {
	if s.byID == nil {
		return ColumnMappingInfo{}, false
	}
	idx, ok := s.byID[canonicalID]
	if !ok {
		return ColumnMappingInfo{}, false
	}
	return s.Columns[idx], true
}

// MissingRequired lists required canonical ids the header row never matched.
func (s *SheetMappingInfo) MissingRequired() []string {
	var missing []string
	seen := map[string]bool{}
	for _, rule := range MappingRules(s.SheetType) {
		if !rule.Required || seen[rule.CanonicalID] {
			continue
		}
		seen[rule.CanonicalID] = true
		if _, ok := s.Lookup(rule.CanonicalID); !ok {
			missing = append(missing, rule.CanonicalID)
		}
	}
	return missing
}

// ResolveColumns maps a sheet's observed headers to canonical column ids.
// A bank template binding wins over the generic rule table, and each
// canonical id is claimed by at most one header; the leftmost claim sticks.
func ResolveColumns(tpl *MappingTemplate, bank BankType, meta reader.SheetMeta, sheetType SheetType) *SheetMappingInfo {
	info := &SheetMappingInfo{
		SheetName: meta.Name,
		SheetType: sheetType,
		byID:      map[string]int{},
	}

	var templateColumns map[string]string
	if tpl != nil {
		if sheetCfg, ok := tpl.SheetConfigFor(bank, sheetType); ok {
			templateColumns = sheetCfg.ReverseColumns()
		}
	}
	rules := MappingRules(sheetType)

	for col, header := range meta.Headers {
		normalized := NormalizeName(header)
		if normalized == "" {
			continue
		}

		if id, ok := templateColumns[normalized]; ok {
			claim(info, ColumnMappingInfo{
				CanonicalID:  id,
				DisplayName:  DisplayName(id),
				SourceName:   header,
				Column:       col,
				DataType:     ruleDataType(rules, id),
				Required:     ruleRequired(rules, id),
				FromTemplate: true,
			})
			continue
		}

		if rule := FindMappingRule(rules, header); rule != nil {
			claim(info, ColumnMappingInfo{
				CanonicalID: rule.CanonicalID,
				DisplayName: DisplayName(rule.CanonicalID),
				SourceName:  header,
				Column:      col,
				DataType:    rule.DataType,
				Required:    rule.Required,
			})
		}
	}
	return info
}

func claim(info *SheetMappingInfo, col ColumnMappingInfo) {
	if _, taken := info.byID[col.CanonicalID]; taken {
		return
	}
	info.byID[col.CanonicalID] = len(info.Columns)
	info.Columns = append(info.Columns, col)
}

func ruleDataType(rules []ColumnMappingRule, canonicalID string) ColumnDataType {
	for _, r := range rules {
		if r.CanonicalID == canonicalID {
			return r.DataType
		}
	}
	return TypeString
}

func ruleRequired(rules []ColumnMappingRule, canonicalID string) bool {
	for _, r := range rules {
		if r.CanonicalID == canonicalID {
			return r.Required
		}
	}
	return false
}

// RowValues re-keys one header-keyed data row by canonical column id.
// Unmapped and absent cells read as empty.
func (s *SheetMappingInfo) RowValues(row map[string]reader.CellValue) map[string]reader.CellValue {
	out := make(map[string]reader.CellValue, len(s.Columns))
	for _, col := range s.Columns {
		if cell, ok := row[col.SourceName]; ok {
			out[col.CanonicalID] = cell
		} else {
			out[col.CanonicalID] = reader.EmptyCell()
		}
	}
	return out
}
