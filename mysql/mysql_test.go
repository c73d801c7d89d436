package mysql

import (
	"strings"
	"testing"

	"docc_render/model"
)

func TestMySQLRepository_NotInitialized(t *testing.T) {
	r := New(MySQLOptions{URI: "user:pass@tcp(127.0.0.1:3306)/docc_render"})

	if _, err := r.GetAll(); err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Expected not initialized error from GetAll, got %v", err)
	}
	if err := r.Insert(&model.Asset{ID: "x"}); err == nil {
		t.Error("Expected error from Insert before Init")
	}
	if _, err := r.Get("x"); err == nil {
		t.Error("Expected error from Get before Init")
	}
	if err := r.DeleteAll(); err == nil {
		t.Error("Expected error from DeleteAll before Init")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close before Init should be a no-op, got %v", err)
	}
}

func TestMySQLRepository_InitRejectsBadDSN(t *testing.T) {
	r := New(MySQLOptions{URI: "not a dsn"})
	err := r.Init()
	if err == nil {
		t.Fatal("Expected Init to fail on a malformed DSN")
	}
	if !strings.Contains(err.Error(), "mysql dsn") {
		t.Errorf("Expected dsn error, got %v", err)
	}
}
