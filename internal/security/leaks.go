// Package security scans an upload source for secrets before it leaves the machine
package security

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
	"github.com/zricethezav/gitleaks/v8/sources"
)

// LeakScanner provides secret detection using the default gitleaks rules
type LeakScanner struct {
	detector *detect.Detector
}

// ScanResult contains the results of a leak scan
type ScanResult struct {
	Findings    []Finding
	ScannedPath string
}

// HasLeaks reports whether any finding remains
func (r *ScanResult) HasLeaks() bool {
	return len(r.Findings) > 0
}

// Finding represents a detected secret
type Finding struct {
	RuleID      string
	Description string
	Path        string // relative to the scanned directory, forward-slash separated
	Line        int
	Secret      string // Redacted
}

// SecretsFoundError aborts an upload when findings remain
type SecretsFoundError struct {
	Count int
}

func (e *SecretsFoundError) Error() string {
	return fmt.Sprintf("%d potential secret(s) detected", e.Count)
}

// NewLeakScanner creates a new leak scanner with default gitleaks rules
func NewLeakScanner() (*LeakScanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks config: %w", err)
	}

	detector.Redact = 80

	return &LeakScanner{detector: detector}, nil
}

// LoadGitleaksIgnore loads ignore fingerprints from root/.gitleaksignore when present
func (s *LeakScanner) LoadGitleaksIgnore(root string) error {
	ignorePath := filepath.Join(root, ".gitleaksignore")
	if _, err := os.Stat(ignorePath); err == nil {
		return s.detector.AddGitleaksIgnore(ignorePath)
	}

	return nil
}

// ScanDirectory scans every file under root. Findings for which skip
// returns true (given the normalized relative path) are dropped.
func (s *LeakScanner) ScanDirectory(ctx context.Context, root string, skip func(path string) bool) (*ScanResult, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	source := &sources.Files{
		Path:   absPath,
		Config: &s.detector.Config,
		Sema:   s.detector.Sema,
	}

	findings, err := s.detector.DetectSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return buildResult(findings, absPath, skip), nil
}

func buildResult(findings []report.Finding, root string, skip func(string) bool) *ScanResult {
	result := &ScanResult{
		ScannedPath: root,
		Findings:    make([]Finding, 0, len(findings)),
	}

	for _, f := range findings {
		path := relativePath(root, f.File)
		if skip != nil && skip(path) {
			continue
		}

		result.Findings = append(result.Findings, Finding{
			RuleID:      f.RuleID,
			Description: f.Description,
			Path:        path,
			Line:        f.StartLine,
			Secret:      f.Secret,
		})
	}

	return result
}

func relativePath(root, file string) string {
	if filepath.IsAbs(file) {
		if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}

	return filepath.ToSlash(file)
}

// FormatFindings formats findings for display
func FormatFindings(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb, "\n⚠️  Found %d potential secret(s):\n\n", len(findings))

	for i, f := range findings {
		_, _ = fmt.Fprintf(&sb, "  %d. %s\n", i+1, f.Description)
		_, _ = fmt.Fprintf(&sb, "     Rule: %s\n", f.RuleID)
		_, _ = fmt.Fprintf(&sb, "     File: %s:%d\n", f.Path, f.Line)
		_, _ = fmt.Fprintf(&sb, "     Secret: %s\n\n", f.Secret)
	}

	return sb.String()
}
