package services

import (
	"regexp"
	"testing"

	"breakage-exchange-api/models"
)

func TestAuditRecordInsertsEntry(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `audit_logs`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAuditService(db)
	if err := svc.Record(9, models.ActionSubmissionApprove, "submission", 7, "looks fine"); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
