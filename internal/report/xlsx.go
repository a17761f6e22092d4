package report

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/ametelin/weather-ranking/internal/pipeline"
)

// XLSX renders the ranking summary as a spreadsheet: a header row of day
// dates plus average and rank columns, then two rows per city (daily
// temperature averages and daily condition hours), ordered by rank.
type XLSX struct {
	path string
}

func NewXLSX(path string) *XLSX {
	return &XLSX{path: path}
}

// Write renders the grid for the given cities, which must already be
// sorted by ascending rank. Nothing is written when the list is empty.
func (x *XLSX) Write(cities []*pipeline.CityAggregate, labels map[string]string) error {
	if len(cities) == 0 {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	numFmt := "0.0"
	floatStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}
	setFloat := func(col, row int, v float64) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell, cell, floatStyle)
	}

	days := cities[0].Days

	if err := set(1, 1, "City / day"); err != nil {
		return err
	}
	for i, day := range days {
		if err := set(i+3, 1, trimDate(day.Date)); err != nil {
			return err
		}
	}
	if err := set(len(days)+3, 1, "Average"); err != nil {
		return err
	}
	if err := set(len(days)+4, 1, "Rank"); err != nil {
		return err
	}

	row := 1
	for _, city := range cities {
		label := city.CityName
		if l, ok := labels[city.CityName]; ok {
			label = l
		}

		row++
		if err := set(1, row, label); err != nil {
			return err
		}
		if err := set(2, row, "Temperature, avg"); err != nil {
			return err
		}
		for i, day := range city.Days {
			if err := setFloat(i+3, row, day.TempAvg); err != nil {
				return err
			}
		}
		if err := setFloat(len(days)+3, row, city.AggTempAvg); err != nil {
			return err
		}
		if err := set(len(days)+4, row, city.Rank); err != nil {
			return err
		}

		row++
		if err := set(2, row, "No precipitation, hours"); err != nil {
			return err
		}
		for i, day := range city.Days {
			if err := setFloat(i+3, row, day.RelevantCondHours); err != nil {
				return err
			}
		}
		if err := setFloat(len(days)+3, row, city.AggRelevantCondHours); err != nil {
			return err
		}
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	log.Printf("report: saved to %s", x.path)
	return nil
}

// trimDate shortens a YYYY-MM-DD date to its MM-DD display form.
func trimDate(date string) string {
	if len(date) > 5 {
		return date[len(date)-5:]
	}
	return date
}
