package config

import (
	"strings"
	"testing"
)

func TestNewConfig(t *testing.T) {
	if err := NewConfig("config_example"); err != nil {
		t.Errorf("could not read example config: %s", err)
	}
	if ServerPort() != 8050 {
		t.Error("expected server port 8050 got ", ServerPort())
	}
	if ServerAddr() != "localhost:8050" {
		t.Error("expected localhost:8050 got ", ServerAddr())
	}
	if ServerPrefix() != "/api" {
		t.Error("expected /api got ", ServerPrefix())
	}
	if !strings.HasSuffix(DbPath(), DbFileName) {
		t.Error("expected db path to end in the db file name got ", DbPath())
	}
	if ServicePath("export") != ExportDir() {
		t.Error("expected default export dir under service root got ", ExportDir())
	}
}
