package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/nmoralesv/event-night-backend/internal/checkin"
	"github.com/nmoralesv/event-night-backend/internal/event"
	"github.com/nmoralesv/event-night-backend/internal/user"
)

// Exporter renders report data as downloadable files.
type Exporter interface {
	GuestListPDF(ev *event.Event, guests []checkin.Guest) ([]byte, string, string, error)
	GuestListExcel(ev *event.Event, guests []checkin.Guest) ([]byte, string, string, error)
	UsersExcel(users []user.User) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// GuestListPDF renders the checked-in guest list for an event.
func (e *exporter) GuestListPDF(ev *event.Event, guests []checkin.Guest) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Guest List - %s", ev.EventName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s | %d checked in", ev.EventDate.Format("2006-01-02"), len(guests)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"#", "Name", "Email", "Checked In"}
	widths := []float64{12, 55, 75, 40}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, g := range guests {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, g.DisplayName(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, g.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, g.CheckedIn.Format("15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("guest_list_%d_%s.pdf", ev.ID, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, "application/pdf", nil
}

// GuestListExcel renders the same guest list as a spreadsheet.
func (e *exporter) GuestListExcel(ev *event.Event, guests []checkin.Guest) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Guest List"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"user_id", "name", "email", "checked_in_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, g := range guests {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), g.DisplayName())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), g.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), g.CheckedIn.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("guest_list_%d.xlsx", ev.ID)
	return buf.Bytes(), filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

// UsersExcel exports every registered user.
func (e *exporter) UsersExcel(users []user.User) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Users"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"id", "email", "name", "phone", "date_of_birth", "events_attended", "has_push_token", "created_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, u := range users {
		row := rIdx + 2
		phone := ""
		if u.Phone != nil {
			phone = *u.Phone
		}
		dob := ""
		if u.DateOfBirth != nil {
			dob = u.DateOfBirth.Format("2006-01-02")
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), u.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), u.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), u.FullName())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), phone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), dob)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), u.EventsAttended)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), u.PushToken != nil && *u.PushToken != "")
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), u.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "users_report.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}
