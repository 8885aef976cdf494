package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/monitoring"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// requiredColumns must all appear in the header row, spelled exactly.
var requiredColumns = []string{
	"question_statement",
	"option_1",
	"option_2",
	"option_3",
	"option_4",
	"correct_option",
}

const imageURLColumn = "image_url"

// MissingColumnsError fails an import before any row is processed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing required columns: " + strings.Join(e.Columns, ", ")
}

// RowError reports the first invalid data row. Row is 1-based over data
// rows, header excluded.
type RowError struct {
	Row     int
	Message string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Error in row %d: %s", e.Row, e.Message)
}

type ImportResult struct {
	Imported int `json:"imported"`
}

// QuestionImportService turns one uploaded CSV/XLSX file into persisted
// questions for a quiz. The whole file commits or none of it does.
type QuestionImportService struct {
	DB       *gorm.DB
	QuizRepo quizFinder
}

type quizFinder interface {
	FindByID(id uint) (*model.Quiz, error)
}

func NewQuestionImportService(db *gorm.DB, quizRepo quizFinder) *QuestionImportService {
	return &QuestionImportService{DB: db, QuizRepo: quizRepo}
}

// ImportFile parses the file at path and imports its rows for the quiz.
// The file is removed afterwards whatever the outcome.
func (s *QuestionImportService) ImportFile(quizID uint, path string) (*ImportResult, error) {
	defer os.Remove(path)

	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	headers, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	columns, err := resolveColumns(headers)
	if err != nil {
		return nil, err
	}

	return s.importRows(quizID, columns, rows)
}

// columnIndex maps a column name to its position in each row; -1 when the
// optional image_url column is absent.
type columnIndex map[string]int

func resolveColumns(headers []string) (columnIndex, error) {
	index := make(columnIndex, len(requiredColumns)+1)
	for _, col := range requiredColumns {
		index[col] = -1
	}
	index[imageURLColumn] = -1

	for i, h := range headers {
		if _, tracked := index[h]; tracked {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if index[col] < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return index, nil
}

func (s *QuestionImportService) importRows(quizID uint, columns columnIndex, rows [][]string) (*ImportResult, error) {
	imported := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			// A row of nothing but blank cells still counts as a data row
			// and fails on its blank question_statement.
			question, err := buildQuestion(quizID, columns, row, i+1)
			if err != nil {
				monitoring.QuizImportRows.WithLabelValues("rejected").Inc()
				return err
			}

			if err := tx.Create(question).Error; err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.QuizImportRows.WithLabelValues("imported").Add(float64(imported))
	return &ImportResult{Imported: imported}, nil
}

func buildQuestion(quizID uint, columns columnIndex, row []string, rowNum int) (*model.Question, error) {
	cell := func(col string) string {
		idx := columns[col]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	for _, col := range requiredColumns {
		if col == "option_4" {
			continue
		}
		if strings.TrimSpace(cell(col)) == "" {
			return nil, &RowError{Row: rowNum, Message: fmt.Sprintf("Field '%s' is required but empty", col)}
		}
	}

	// option_4 is the odd one out: blank or a literal "none" means the
	// question only has three real options.
	option4 := strings.TrimSpace(cell("option_4"))
	if option4 == "" || strings.EqualFold(option4, "none") {
		option4 = model.Option4Placeholder
	}

	rawCorrect := strings.TrimSpace(cell("correct_option"))
	parsed, err := strconv.ParseFloat(rawCorrect, 64)
	if err != nil {
		return nil, &RowError{Row: rowNum, Message: fmt.Sprintf("invalid correct_option value %q", rawCorrect)}
	}
	correctOption := int(parsed)
	if correctOption < 1 || correctOption > 4 {
		return nil, &RowError{Row: rowNum, Message: fmt.Sprintf("correct option must be between 1 and 4, got %d", correctOption)}
	}

	return &model.Question{
		QuizID:            quizID,
		QuestionStatement: strings.TrimSpace(cell("question_statement")),
		QuestionImage:     strings.TrimSpace(cell(imageURLColumn)),
		Option1:           strings.TrimSpace(cell("option_1")),
		Option2:           strings.TrimSpace(cell("option_2")),
		Option3:           strings.TrimSpace(cell("option_3")),
		Option4:           option4,
		CorrectOption:     correctOption,
	}, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// readTable loads the header row and data rows from a CSV or XLSX file.
// Every cell is treated as text.
func readTable(path string) ([]string, [][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, &MissingColumnsError{Columns: requiredColumns}
	}
	return records[0], records[1:], nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}

	// Sheets routinely carry trailing rows of empty cells past the data;
	// drop those so they do not read as data rows.
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	if len(rows) == 0 {
		return nil, nil, &MissingColumnsError{Columns: requiredColumns}
	}
	return rows[0], rows[1:], nil
}
