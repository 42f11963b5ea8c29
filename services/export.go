package services

import (
	"bytes"
	"fmt"

	"social_cases_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportMaxRows caps the number of cases written to one spreadsheet
const ExportMaxRows = 10000

const exportSheet = "Casos"

var exportHeaders = []string{
	"ID", "Fecha", "RUT", "Trabajador", "Empresa", "Obra", "Tipo de solicitud", "Estado", "Activo", "Creado",
}

// ExportSocialCases writes the cases matching the filters to an XLSX workbook, newest first
func ExportSocialCases(db *gorm.DB, f SocialCaseFilters) (*bytes.Buffer, error) {
	var cases []models.SocialCase
	if err := ApplySocialCaseFilters(db.Model(&models.SocialCase{}), f).
		Order(socialCaseOrder).
		Limit(ExportMaxRows).
		Find(&cases).Error; err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", exportSheet)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(exportSheet, cell, header)
	}
	headerStyle, _ := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	file.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle)

	for i, sc := range cases {
		construction := ""
		if sc.ConstructionName != nil {
			construction = *sc.ConstructionName
		}
		active := "NO"
		if sc.IsActive {
			active = "SI"
		}

		row := []interface{}{
			sc.ID,
			sc.Date.Format("2006-01-02"),
			sc.EmployeeRut,
			sc.EmployeeNames,
			sc.BusinessName,
			construction,
			sc.RequestType,
			sc.State,
			active,
			sc.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}
