package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"attendance_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet      = "Attendance"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout = "2006-01-02 15:04:05"
)

type ExportHandler struct {
	db *sql.DB
}

func NewExportHandler(db *sql.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

// ExportExcel streams all attendance rows in an inclusive date range as a
// single-sheet workbook. An empty range is a 404, not an empty file.
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.queryRange(start, end)
	if err != nil {
		log.Printf("Error querying export range: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query attendance records"})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data for this period"})
		return
	}

	workbook, err := buildWorkbook(rows)
	if err != nil {
		log.Printf("Error building export workbook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export file"})
		return
	}

	filename := fmt.Sprintf("attendance_%s_to_%s.xlsx", start.Format(dateLayout), end.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", excelContentType)
	c.Status(http.StatusOK)

	if err := workbook.Write(c.Writer); err != nil {
		log.Printf("Error writing export workbook: %v", err)
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.New("start_date and end_date are required (YYYY-MM-DD)")
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("start_date must not be after end_date")
	}
	return start, end, nil
}

func (h *ExportHandler) queryRange(start, end time.Time) ([]models.ExportRow, error) {
	rows, err := h.db.Query(`
        SELECT u.national_id, a.timestamp, a.type
        FROM attendance a
        JOIN users u ON a.user_id = u.id
        WHERE date(a.timestamp) BETWEEN $1 AND $2
        ORDER BY a.timestamp
    `, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ExportRow
	for rows.Next() {
		var row models.ExportRow
		if err := rows.Scan(&row.NationalID, &row.Timestamp, &row.Type); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func buildWorkbook(rows []models.ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"national_id", "timestamp", "type"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{row.NationalID, row.Timestamp.Format(exportTimeLayout), row.Type}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
