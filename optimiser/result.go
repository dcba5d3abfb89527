package optimiser

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

// FlatRow is one operation-level row of the flattened result tree, the shape
// used by the CSV/JSON data export.
type FlatRow struct {
	ContextKey    string  `json:"contextKey"`
	ContextScore  float64 `json:"contextScore"`
	FactorKey     string  `json:"factorKey"`
	FactorScore   float64 `json:"factorScore"`
	OperationKey  string  `json:"operationKey"`
	Weight        float64 `json:"weight"`
	Score         float64 `json:"score"`
	Failed        bool    `json:"failed"`
	Suggestions   string  `json:"suggestions"`
}

// Rows flattens the result tree into operation-level rows in evaluation
// order.
func (r *Result) Rows() []FlatRow {
	var rows []FlatRow
	for _, cr := range r.Contexts {
		for _, fr := range cr.Factors {
			for _, op := range fr.Operations {
				rows = append(rows, FlatRow{
					ContextKey:   cr.Key,
					ContextScore: cr.Score,
					FactorKey:    fr.Key,
					FactorScore:  fr.Score,
					OperationKey: op.Key,
					Weight:       op.Weight,
					Score:        op.Score,
					Failed:       op.Failed,
					Suggestions:  joinSuggestions(op.Suggestions),
				})
			}
		}
	}
	return rows
}

// CSV renders the flattened rows with a header line.
func (r *Result) CSV() ([]byte, error) {
	return WriteCSV(r.Rows())
}

// WriteCSV renders flattened rows with a header line. It serves fresh
// results and rows rebuilt from a stored analysis alike.
func WriteCSV(rows []FlatRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"context", "context_score", "factor", "factor_score", "operation", "weight", "score", "failed", "suggestions"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.ContextKey,
			formatScore(row.ContextScore),
			row.FactorKey,
			formatScore(row.FactorScore),
			row.OperationKey,
			formatScore(row.Weight),
			formatScore(row.Score),
			strconv.FormatBool(row.Failed),
			row.Suggestions,
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

func joinSuggestions(suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return ""
	}
	parts := make([]string, len(suggestions))
	for i, s := range suggestions {
		parts[i] = string(s)
	}
	return strings.Join(parts, "|")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
