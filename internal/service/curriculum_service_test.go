package service

import (
	"errors"
	"testing"

	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"

	"gorm.io/gorm"
)

func newCurriculumServices(db *gorm.DB) (*SubjectService, *ChapterService) {
	subjectRepo := repository.NewSubjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	return NewSubjectService(subjectRepo), NewChapterService(chapterRepo, subjectRepo)
}

func TestSubjectDeleteBlockedByChapters(t *testing.T) {
	db := openTestDB(t)
	subjects, chapters := newCurriculumServices(db)

	subject, err := subjects.Create(SubjectRequest{Name: "Physics"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	chapter, err := chapters.Create(ChapterRequest{SubjectID: subject.ID, Name: "Optics"})
	if err != nil {
		t.Fatalf("create chapter: %v", err)
	}

	if err := subjects.Delete(subject.ID); !errors.Is(err, util.ErrSubjectHasChapters) {
		t.Fatalf("delete with chapters err = %v, want ErrSubjectHasChapters", err)
	}

	if err := chapters.Delete(chapter.ID); err != nil {
		t.Fatalf("delete chapter: %v", err)
	}
	if err := subjects.Delete(subject.ID); err != nil {
		t.Fatalf("delete emptied subject: %v", err)
	}
}

func TestChapterDeleteBlockedByQuizzes(t *testing.T) {
	db := openTestDB(t)
	subjects, chapters := newCurriculumServices(db)

	subject, err := subjects.Create(SubjectRequest{Name: "Math"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	chapter, err := chapters.Create(ChapterRequest{SubjectID: subject.ID, Name: "Algebra"})
	if err != nil {
		t.Fatalf("create chapter: %v", err)
	}
	quiz := &model.Quiz{ChapterID: chapter.ID, TimeDuration: 15}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if err := chapters.Delete(chapter.ID); !errors.Is(err, util.ErrChapterHasQuizzes) {
		t.Fatalf("delete with quizzes err = %v, want ErrChapterHasQuizzes", err)
	}
}

func TestChapterCreateRequiresSubject(t *testing.T) {
	db := openTestDB(t)
	_, chapters := newCurriculumServices(db)

	_, err := chapters.Create(ChapterRequest{SubjectID: 999, Name: "Orphan"})
	if !errors.Is(err, util.ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
}

func TestQuizDeleteRemovesDependents(t *testing.T) {
	db := openTestDB(t)
	subjects, chapters := newCurriculumServices(db)

	subject, err := subjects.Create(SubjectRequest{Name: "Chemistry"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	chapter, err := chapters.Create(ChapterRequest{SubjectID: subject.ID, Name: "Organic"})
	if err != nil {
		t.Fatalf("create chapter: %v", err)
	}

	quizRepo := repository.NewQuizRepository(db)
	quiz := &model.Quiz{ChapterID: chapter.ID, TimeDuration: 20}
	if err := quizRepo.Create(quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	question := &model.Question{
		QuizID: quiz.ID, QuestionStatement: "s",
		Option1: "a", Option2: "b", Option3: "c", Option4: "d", CorrectOption: 1,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	score := &model.Score{QuizID: quiz.ID, UserID: 1, TotalScored: 80}
	if err := db.Create(score).Error; err != nil {
		t.Fatalf("create score: %v", err)
	}

	if err := quizRepo.DeleteWithDependents(quiz.ID); err != nil {
		t.Fatalf("DeleteWithDependents: %v", err)
	}

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"questions", &model.Question{}},
		{"scores", &model.Score{}},
		{"quizzes", &model.Quiz{}},
	} {
		var count int64
		if err := db.Model(probe.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", probe.name, err)
		}
		if count != 0 {
			t.Fatalf("%s left behind after quiz delete: %d", probe.name, count)
		}
	}
}
