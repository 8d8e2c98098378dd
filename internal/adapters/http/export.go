package httpadapter

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/textdesk/internal/infrastructure/session"
)

const (
	keywordsSheet = "Keywords"
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// keywordsWorkbook exports the session keywords, extracting them with the
// defaults first when the session has text but no keywords yet.
func (rt *Router) keywordsWorkbook(w http.ResponseWriter, r *http.Request) {
	id := rt.sessionID(w, r)
	data, _ := rt.sessions.Get(id)

	keywords := data.Keywords
	if len(keywords) == 0 {
		status, res := rt.extractKeywords(r, data.OriginalText, keywordsRequest{})
		if res.Failed() {
			writeJSON(w, status, map[string]string{"error": res.Error})
			return
		}
		keywords = res.Keywords
		rt.sessions.Update(id, func(d *session.Data) { d.Keywords = keywords })
	}

	body, err := buildKeywordsWorkbook(keywords)
	if err != nil {
		rt.logger.Error("keywords_export_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not build the workbook."})
		return
	}
	w.Header().Set("Content-Type", xlsxMediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="keywords.xlsx"`)
	_, _ = w.Write(body)
}

func buildKeywordsWorkbook(keywords []string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", keywordsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(keywordsSheet, "A1", &[]any{"Rank", "Keyword"}); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(keywordsSheet, "A1", "B1", header); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	for i, kw := range keywords {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(keywordsSheet, cell, &[]any{i + 1, kw}); err != nil {
			return nil, fmt.Errorf("write keyword %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(keywordsSheet, "B", "B", 48); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
