package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

func TestProductDeleteRefusedWhileReferenced(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `products` WHERE product_id = \\? AND delete_at IS NULL"),
			columns: []string{"product_id", "name", "code"},
			rows:    [][]driver.Value{{int64(1), "Glass Bottle", "GB-05"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `items` WHERE product_id = \\?"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(4)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewProductService(db)

	if _, err := svc.Delete(1); !errors.Is(err, ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestProductDeleteSucceedsWhenUnreferenced(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `products` WHERE product_id = \\?"),
			columns: []string{"product_id", "name", "code"},
			rows:    [][]driver.Value{{int64(2), "Crate", "CR-01"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `items` WHERE product_id = \\?"),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `products` SET `delete_at`=\\? WHERE product_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewProductService(db)

	product, err := svc.Delete(2)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if product.Code != "CR-01" {
		t.Fatalf("expected deleted product to be returned, got %+v", product)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
