// Package plumber adapts the pdfplumber table extractor as an
// extract.Source. The bundled helper script is written to a temp
// directory and run under python3 once per call; results stream back as
// newline-delimited JSON on stdout.
package plumber

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ledgerlift/ledgerlift/internal/extract"
)

//go:embed extract_tables.py
var helperScript []byte

const scriptName = "extract_tables.py"

// Source shells out to python3 with pdfplumber installed.
type Source struct {
	// Python overrides the interpreter; empty means python3 on PATH.
	Python string
}

// New returns a Source using the default interpreter.
func New() *Source {
	return &Source{}
}

func (s *Source) python() string {
	if s.Python != "" {
		return s.Python
	}
	return "python3"
}

// FirstPageText returns the plain text of the document's first page.
func (s *Source) FirstPageText(ctx context.Context, path, password string) (string, error) {
	args := []string{"--mode", "text"}
	if password != "" {
		args = append(args, "--password", password)
	}

	out, err := s.run(ctx, path, args)
	if err != nil {
		return "", err
	}
	return decodeText(bytes.NewReader(out))
}

// ExtractTables extracts every page's candidate tables using the given
// settings, which are handed to the extractor untouched.
func (s *Source) ExtractTables(ctx context.Context, path, password string, settings extract.Settings) (*extract.Document, error) {
	args := []string{"--mode", "tables"}
	if password != "" {
		args = append(args, "--password", password)
	}
	if len(settings) > 0 {
		js, err := json.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("encoding table settings: %w", err)
		}
		args = append(args, "--settings", string(js))
	}

	out, err := s.run(ctx, path, args)
	if err != nil {
		return nil, err
	}

	doc, err := decodeTables(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// run executes the helper and returns its stdout. A failure envelope on
// stdout wins over the bare exit status, so callers see the sentinel for
// wrong passwords and missing files rather than "exit status 1".
func (s *Source) run(ctx context.Context, path string, extra []string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "ledgerlift-extract-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	scriptPath := filepath.Join(tmpDir, scriptName)
	if err := os.WriteFile(scriptPath, helperScript, 0o644); err != nil {
		return nil, fmt.Errorf("writing helper script: %w", err)
	}

	args := append([]string{scriptPath, path}, extra...)
	cmd := exec.CommandContext(ctx, s.python(), args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if envErr := errorLine(stdout.Bytes()); envErr != nil {
		return nil, envErr
	}
	if runErr != nil {
		return nil, fmt.Errorf("running %s: %w", s.python(), runErr)
	}
	return stdout.Bytes(), nil
}

type helperError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mapHelperError(e *helperError) error {
	switch e.Code {
	case "bad_password":
		return fmt.Errorf("%w: %s", extract.ErrBadPassword, e.Message)
	case "not_found":
		return fmt.Errorf("%w: %s", extract.ErrNotFound, e.Message)
	default:
		return fmt.Errorf("extractor failed: %s", e.Message)
	}
}

// errorLine finds the helper's failure envelope in out, if any.
func errorLine(out []byte) error {
	dec := json.NewDecoder(bytes.NewReader(out))
	for {
		var ln struct {
			Error *helperError `json:"error"`
		}
		if err := dec.Decode(&ln); err != nil {
			return nil
		}
		if ln.Error != nil {
			return mapHelperError(ln.Error)
		}
	}
}
