// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ValidRegistration returns a registration payload that passes every rule.
// Each call returns a fresh map.
func ValidRegistration() map[string]string {
	return map[string]string{
		validation.FieldFirstName:    "Ana",
		validation.FieldLastName:     "Souza",
		validation.FieldEmail:        "ana@example.com",
		validation.FieldCPF:          "529.982.247-25",
		validation.FieldCEP:          "20040-020",
		validation.FieldNumber:       "100",
		validation.FieldStreet:       "Rua da Assembleia",
		validation.FieldNeighborhood: "Centro",
		validation.FieldState:        "RJ",
		validation.FieldCity:         "Rio de Janeiro",
		validation.FieldPhone:        "21 98765-4321",
	}
}

// With returns a copy of values with field set to value.
func With(values map[string]string, field, value string) map[string]string {
	out := make(map[string]string, len(values)+1)
	for key, v := range values {
		out[key] = v
	}
	out[field] = value
	return out
}

// MustLoadFormModel loads a JSON fixture into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) model.FormModel {
	t.Helper()

	form, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return form
}

// LoadFormModel reads a JSON fixture into a FormModel, returning an error for
// callers managing setup outside of *testing.T.
func LoadFormModel(path string) (model.FormModel, error) {
	if path == "" {
		return model.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out model.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
