package services

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"breakage-exchange-api/models"

	"github.com/go-sql-driver/mysql"
)

func TestDeleteCascadesItemsAndPhotos(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `photos` WHERE item_id IN \\(SELECT `item_id` FROM `items` WHERE submission_id = \\?\\)"),
			columns: []string{"photo_id", "item_id", "position", "stored_path"},
			rows: [][]driver.Value{
				{int64(1), int64(4), int64(1), "uploads/a.jpg"},
				{int64(2), int64(5), int64(1), "uploads/b.jpg"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `photos` WHERE item_id IN \\(SELECT `item_id` FROM `items` WHERE submission_id = \\?\\)"),
			result:  scriptedResult{rowsAffected: 2},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `items` WHERE submission_id = \\?"),
			result:  scriptedResult{rowsAffected: 2},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `delete_at`=\\? WHERE submission_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSubmissionService(db)

	paths, err := svc.Delete(7)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "uploads/a.jpg" || paths[1] != "uploads/b.jpg" {
		t.Fatalf("unexpected stored paths: %v", paths)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteStopsWhenPhotoDeleteFails(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `photos` WHERE item_id IN"),
			columns: []string{"photo_id", "item_id", "position", "stored_path"},
			rows:    [][]driver.Value{{int64(1), int64(4), int64(1), "uploads/a.jpg"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `photos`"),
			err:     fmt.Errorf("lock wait timeout"),
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSubmissionService(db)

	if _, err := svc.Delete(7); err == nil {
		t.Fatal("expected error when photo delete fails")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateRetriesOnDuplicateNumber(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `submissions` WHERE DATE\\(create_at\\) = DATE\\(NOW\\(\\)\\)"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `submissions`"),
			err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `submissions`"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `submissions`"),
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `items`"),
			result:  scriptedResult{lastInsertID: 9, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSubmissionService(db)

	items := []models.Item{
		{ProductID: 2, Quantity: 3, Reason: "cracked neck", Operation: models.OperationBreakage},
	}
	submission, err := svc.Create(3, "Batch A", items)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.HasPrefix(submission.Number, "BRK-") || !strings.HasSuffix(submission.Number, "-0002") {
		t.Fatalf("expected retried sequence in number, got %q", submission.Number)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	var steps []*queryStep
	for i := 0; i < numberAttempts; i++ {
		steps = append(steps,
			&queryStep{
				kind:    kindQuery,
				pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `submissions`"),
				columns: []string{"count"},
				rows:    [][]driver.Value{{int64(0)}},
			},
			&queryStep{
				kind:    kindExec,
				pattern: regexp.MustCompile("INSERT INTO `submissions`"),
				err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
			},
		)
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSubmissionService(db)

	_, err := svc.Create(3, "Batch A", nil)
	if !errors.Is(err, ErrNumberConflict) {
		t.Fatalf("expected ErrNumberConflict, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate entry", &mysql.MySQLError{Number: 1062}, true},
		{"wrapped duplicate", fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062}), true},
		{"other mysql error", &mysql.MySQLError{Number: 1048}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKeyError(tc.err); got != tc.want {
				t.Fatalf("IsDuplicateKeyError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
