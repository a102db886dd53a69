package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/state"
	"github.com/keptlist/kept/internal/storage"
)

func TestInitCommandCreatesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tmpDir)

	cfg := &config.Config{
		StateFile:  filepath.Join(tmpDir, "state.json"),
		SchemaFile: filepath.Join(tmpDir, "state.schema.json"),
	}

	if err := initCommand(cfg, []string{}); err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}

	configPath := filepath.Join(tmpDir, config.ProjectConfigFile)
	for _, path := range []string{cfg.StateFile, cfg.SchemaFile, configPath} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}

	st, err := storage.New(cfg.StateFile).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.Meta.SchemaVersion != state.SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", st.Meta.SchemaVersion, state.SchemaVersion)
	}
	if len(st.Todos) != 0 {
		t.Errorf("Todos = %v, want none", st.Todos)
	}
	if len(st.Categories) != 1 || st.Categories[0].ID != state.UncategorizedID {
		t.Fatalf("Categories = %v, want the sentinel only", st.Categories)
	}

	schemaData, err := os.ReadFile(cfg.SchemaFile)
	if err != nil {
		t.Fatalf("ReadFile(schemaFile) error = %v", err)
	}
	if string(schemaData) != string(storage.BundledSchema()) {
		t.Error("schema file does not match bundled schema")
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile(configPath) error = %v", err)
	}
	if string(configData) != config.ExampleConfig() {
		t.Error("config file does not match example config")
	}
}

func TestInitCommandSkipsExistingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tmpDir)

	cfg := &config.Config{
		StateFile:  filepath.Join(tmpDir, "state.json"),
		SchemaFile: filepath.Join(tmpDir, "state.schema.json"),
	}

	if err := os.WriteFile(cfg.StateFile, []byte("existing"), 0644); err != nil {
		t.Fatalf("WriteFile(stateFile) error = %v", err)
	}

	if err := initCommand(cfg, []string{"-skip-config"}); err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}

	data, err := os.ReadFile(cfg.StateFile)
	if err != nil {
		t.Fatalf("ReadFile(stateFile) error = %v", err)
	}
	if string(data) != "existing" {
		t.Errorf("state file was overwritten")
	}

	if _, err := os.Stat(filepath.Join(tmpDir, config.ProjectConfigFile)); !os.IsNotExist(err) {
		t.Error("config file was written despite -skip-config")
	}

	if _, err := os.Stat(cfg.SchemaFile); err != nil {
		t.Fatalf("expected schema file to be created: %v", err)
	}
}

func TestInitCommandWithoutSchemaOverride(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tmpDir)

	cfg := &config.Config{StateFile: filepath.Join(tmpDir, "state.json")}

	if err := initCommand(cfg, []string{"-skip-config"}); err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}

	// No schema_file configured means the bundled schema is used and no
	// schema file is written.
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("dir contents = %v, want [state.json]", names)
	}
}
