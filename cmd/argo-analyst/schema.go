package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-analyst/internal/config"
	"github.com/urfave/cli/v3"
)

const (
	schemaFileName = "argo-analyst-config.json"
	sampleFileName = "argo-analyst-config.yaml"
)

// schemaAction prints the config JSON schema, or with --out writes the schema and a
// sample config into a directory.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	out := cmd.String("out")
	if out == "" {
		schema, err := config.Schema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}

		_, err = fmt.Fprintln(cmd.Root().Writer, schema)

		return err
	}

	schemaPath := filepath.Join(out, schemaFileName)
	if err := generateSchemaFile(schemaPath); err != nil {
		return err
	}

	samplePath := filepath.Join(out, sampleFileName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if err := generateSampleConfig(samplePath, schemaFileName); err != nil {
			return err
		}

		fmt.Fprintf(cmd.Root().ErrWriter, "Sample config generated at %s\n", samplePath)
	}

	fmt.Fprintf(cmd.Root().ErrWriter, "Schema generated at %s\n", schemaPath)

	return nil
}

func generateSchemaFile(path string) error {
	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig writes the default config with a yaml-language-server
// header pointing at the schema.
func generateSampleConfig(path, schemaName string) error {
	data, err := config.Default().Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	data = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), data...)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	return nil
}
