package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"strconv"

	"loadboard/adapters/excel"

	"github.com/xuri/excelize/v2"
)

// RawHeaders is the column order written by the generator, in the
// spreadsheet's own casing.
var RawHeaders = []string{
	"Course Title", "Code", "Class Dates", "Class Times", "Days",
	"Hall", "Instructor", "Minutes", "Start Time", "End Time", "Department",
}

// ScheduleGeneratorConfig configures the schedule data generator
type ScheduleGeneratorConfig struct {
	Sessions    int     `json:"sessions"`
	Instructors int     `json:"instructors"`
	Halls       int     `json:"halls"`
	DirtyRate   float64 `json:"dirty_rate"` // share of rows with a malformed cell
	Seed        int64   `json:"seed"`
}

// DefaultScheduleConfig returns sensible defaults for schedule generation
func DefaultScheduleConfig() ScheduleGeneratorConfig {
	return ScheduleGeneratorConfig{
		Sessions:    400,
		Instructors: 40,
		Halls:       15,
		DirtyRate:   0.05,
		Seed:        42,
	}
}

var (
	coursePrefixes = []string{"ACC", "FIN", "MGT", "ECN", "POL", "PSY", "ENG", "KAZ", "LAW", "CIT", "MATH", "ZZZ"}
	courseTopics   = []string{"Introduction to", "Principles of", "Advanced", "Seminar in", "Topics in"}
	courseSubjects = []string{"Accounting", "Finance", "Management", "Economics", "Politics", "Psychology", "Writing", "Kazakh", "Contracts", "Databases", "Calculus", "Ethics"}
	firstNames     = []string{"Aigerim", "John", "Dana", "Omar", "Marat", "Anna", "Lee", "Saule", "Ivan", "Maria"}
	lastNames      = []string{"Smith", "Nur", "Ali", "Kim", "Petrov", "Bekova", "O'Neil", "Serikov", "Lee", "Garcia"}
	dayCodes       = []string{"M", "T", "W", "R", "F", "S", "Mon", "tue", "WED", "Thu", "fri", "Sat", "Su"}
	startSlots     = []string{"08:30", "09:00", "10:30", "12:00", "13:30", "15:00", "16:30", "18:00", "19:30"}
	minuteChoices  = []int{50, 75, 150}
	dirtyDays      = []string{"Tues", "", "X", "Monday"}
	dirtyTimes     = []string{"TBA", "", "after lunch"}
	dirtyMinutes   = []string{"", "n/a", "-10"}
)

// ScheduleDataGenerator produces raw schedule rows with a controlled share of
// malformed cells
type ScheduleDataGenerator struct {
	config ScheduleGeneratorConfig
	rng    *rand.Rand
}

// NewScheduleDataGenerator creates a new schedule data generator
func NewScheduleDataGenerator(config ScheduleGeneratorConfig) *ScheduleDataGenerator {
	return &ScheduleDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

func (g *ScheduleDataGenerator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *ScheduleDataGenerator) dirty() bool {
	return g.rng.Float64() < g.config.DirtyRate
}

// Rows generates the raw string rows, header first
func (g *ScheduleDataGenerator) Rows() [][]string {
	instructors := make([]string, max(g.config.Instructors, 1))
	for i := range instructors {
		first, last := g.pick(firstNames), g.pick(lastNames)
		if i%3 == 0 {
			instructors[i] = fmt.Sprintf("%s, %s", last, first)
		} else {
			instructors[i] = fmt.Sprintf("%s %s", first, last)
		}
	}
	halls := make([]string, max(g.config.Halls, 1))
	for i := range halls {
		halls[i] = fmt.Sprintf("Room %d", 100+i)
	}

	rows := [][]string{append([]string(nil), RawHeaders...)}
	for i := 0; i < g.config.Sessions; i++ {
		prefix := g.pick(coursePrefixes)
		code := fmt.Sprintf("%s%d", prefix, 1000+g.rng.Intn(4000))
		title := fmt.Sprintf("%s %s", g.pick(courseTopics), g.pick(courseSubjects))
		day := g.pick(dayCodes)
		start := g.pick(startSlots)
		minutes := strconv.Itoa(minuteChoices[g.rng.Intn(len(minuteChoices))])
		instructor := instructors[g.rng.Intn(len(instructors))]
		hall := halls[g.rng.Intn(len(halls))]

		if g.dirty() {
			switch g.rng.Intn(4) {
			case 0:
				day = g.pick(dirtyDays)
			case 1:
				start = g.pick(dirtyTimes)
			case 2:
				minutes = g.pick(dirtyMinutes)
			default:
				instructor = "nan"
			}
		}

		rows = append(rows, []string{
			title, code, "01/09/2025-20/12/2025", start, day,
			hall, instructor, minutes, start, "", "",
		})
	}
	return rows
}

// RawTable generates rows in the shape the excel reader returns
func (g *ScheduleDataGenerator) RawTable(source string) *excel.RawTable {
	rows := g.Rows()
	table := &excel.RawTable{Source: source, Headers: rows[0]}
	for _, row := range rows[1:] {
		raw := make(excel.RawRow, len(row))
		for i, cell := range row {
			raw[rows[0][i]] = cell
		}
		table.Rows = append(table.Rows, raw)
	}
	return table
}

// CSVBytes renders the generated rows as a CSV file
func (g *ScheduleDataGenerator) CSVBytes() ([]byte, error) {
	return RowsToCSV(g.Rows())
}

// XLSXBytes renders the generated rows as a single-sheet workbook
func (g *ScheduleDataGenerator) XLSXBytes() ([]byte, error) {
	return RowsToXLSX(g.Rows())
}

// RowsToCSV writes literal rows as CSV, for fixtures
func RowsToCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RowsToXLSX writes literal rows to Sheet1 of a new workbook, for fixtures
func RowsToXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow("Sheet1", cell, &values); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
