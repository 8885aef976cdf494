package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQuiz(t *testing.T, db *gorm.DB) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{ChapterID: 1, TimeDuration: 30}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func newImporter(db *gorm.DB) *QuestionImportService {
	return NewQuestionImportService(db, repository.NewQuizRepository(db))
}

func TestImportCSV(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_3,option_4,correct_option",
		"What is 2+2?,3,4,5,6,2",
		"Capital of France?,Paris,Rome,Madrid,Berlin,1",
	}, "\n"))

	result, err := svc.ImportFile(quiz.ID, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("imported = %d, want 2", result.Imported)
	}

	var count int64
	if err := db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("stored questions = %d, want 2", count)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file should be removed after import")
	}
}

func TestImportExtraColumnsIgnored(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"difficulty,question_statement,option_1,option_2,option_3,option_4,correct_option,notes",
		"hard,Q1,a,b,c,d,3,irrelevant",
	}, "\n"))

	result, err := svc.ImportFile(quiz.ID, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("imported = %d, want 1", result.Imported)
	}

	var q model.Question
	if err := db.Where("quiz_id = ?", quiz.ID).First(&q).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}
	if q.QuestionStatement != "Q1" || q.CorrectOption != 3 {
		t.Fatalf("question mapped from wrong columns: %+v", q)
	}
}

func TestImportMissingColumns(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_4",
		"Q1,a,b,d",
	}, "\n"))

	_, err := svc.ImportFile(quiz.ID, path)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnsError", err)
	}
	want := []string{"option_3", "correct_option"}
	if len(missing.Columns) != len(want) {
		t.Fatalf("missing = %v, want %v", missing.Columns, want)
	}
	for i, col := range want {
		if missing.Columns[i] != col {
			t.Fatalf("missing = %v, want %v", missing.Columns, want)
		}
	}
	if got := err.Error(); got != "Missing required columns: option_3, correct_option" {
		t.Fatalf("message = %q", got)
	}
}

func TestImportRowErrorRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_3,option_4,correct_option",
		"Q1,a,b,c,d,1",
		"Q2,a,b,c,d,7",
		"Q3,a,b,c,d,2",
	}, "\n"))

	_, err := svc.ImportFile(quiz.ID, path)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("err = %v, want RowError", err)
	}
	if rowErr.Row != 2 {
		t.Fatalf("row = %d, want 2", rowErr.Row)
	}
	if got := err.Error(); got != "Error in row 2: correct option must be between 1 and 4, got 7" {
		t.Fatalf("message = %q", got)
	}

	var count int64
	if err := db.Model(&model.Question{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("stored questions = %d, want 0 after rollback", count)
	}
}

func TestImportEmptyRequiredField(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_3,option_4,correct_option",
		"Q1,a,,c,d,1",
	}, "\n"))

	_, err := svc.ImportFile(quiz.ID, path)
	if err == nil || err.Error() != "Error in row 1: Field 'option_2' is required but empty" {
		t.Fatalf("err = %v", err)
	}
}

func TestImportOption4Normalization(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_3,option_4,correct_option",
		"Q1,a,b,c,,1",
		"Q2,a,b,c,None,2",
		"Q3,a,b,c,d,3",
	}, "\n"))

	if _, err := svc.ImportFile(quiz.ID, path); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	var questions []model.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if questions[0].Option4 != model.Option4Placeholder {
		t.Fatalf("blank option_4 = %q, want placeholder", questions[0].Option4)
	}
	if questions[1].Option4 != model.Option4Placeholder {
		t.Fatalf("'None' option_4 = %q, want placeholder", questions[1].Option4)
	}
	if questions[2].Option4 != "d" {
		t.Fatalf("real option_4 = %q, want d", questions[2].Option4)
	}
}

func TestImportFractionalCorrectOptionTruncates(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_3,option_4,correct_option",
		"Q1,a,b,c,d,3.0",
	}, "\n"))

	if _, err := svc.ImportFile(quiz.ID, path); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	var q model.Question
	if err := db.First(&q).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if q.CorrectOption != 3 {
		t.Fatalf("correct option = %d, want 3", q.CorrectOption)
	}
}

func TestImportBlankRowFails(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	// A line of empty cells is still a data row; it fails on its blank
	// question_statement and takes the whole import with it.
	path := writeTempCSV(t, strings.Join([]string{
		"question_statement,option_1,option_2,option_3,option_4,correct_option",
		"Q1,a,b,c,d,1",
		",,,,,",
		"Q2,a,b,c,d,2",
	}, "\n"))

	_, err := svc.ImportFile(quiz.ID, path)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("err = %v, want RowError", err)
	}
	if rowErr.Row != 2 {
		t.Fatalf("row = %d, want 2", rowErr.Row)
	}
	if got := err.Error(); got != "Error in row 2: Field 'question_statement' is required but empty" {
		t.Fatalf("message = %q", got)
	}

	var count int64
	if err := db.Model(&model.Question{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("stored questions = %d, want 0 after rollback", count)
	}
}

func TestImportHeaderOnly(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := writeTempCSV(t, "question_statement,option_1,option_2,option_3,option_4,correct_option\n")

	result, err := svc.ImportFile(quiz.ID, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.Imported != 0 {
		t.Fatalf("imported = %d, want 0", result.Imported)
	}
}

func TestImportQuizNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newImporter(db)

	path := writeTempCSV(t, "question_statement,option_1,option_2,option_3,option_4,correct_option\n")

	_, err := svc.ImportFile(999, path)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("temp file should be removed even when the quiz is missing")
	}
}

func TestImportXLSX(t *testing.T) {
	db := openTestDB(t)
	quiz := seedQuiz(t, db)
	svc := newImporter(db)

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"question_statement", "option_1", "option_2", "option_3", "option_4", "correct_option"},
		{"What is 2+2?", "3", "4", "5", "6", "2"},
		{"Largest planet?", "Earth", "Mars", "Jupiter", "none", "3"},
		// Trailing rows of empty cells, as sheets tend to carry past the
		// data. They must not read as data rows.
		{"", "", "", "", "", ""},
		{"", "", "", "", "", ""},
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	f.Close()

	result, err := svc.ImportFile(quiz.ID, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("imported = %d, want 2", result.Imported)
	}

	var questions []model.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if questions[1].Option4 != model.Option4Placeholder {
		t.Fatalf("xlsx 'none' option_4 = %q, want placeholder", questions[1].Option4)
	}
}
