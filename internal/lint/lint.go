// Package lint runs line-oriented style and naming checks over C++ sources.
package lint

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/logging"
)

// Rule identifies a check.
type Rule string

// Rules.
const (
	RuleTabs               Rule = "tabs"
	RuleLineLength         Rule = "line-length"
	RuleTrailingWhitespace Rule = "trailing-whitespace"
	RuleClassName          Rule = "class-name"
	RuleConstantName       Rule = "constant-name"
)

// Finding is one reported issue.
type Finding struct {
	// File is relative to the project root, slash-separated.
	File    string
	Line    int
	Rule    Rule
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Message)
}

// Options configures a Checker.
type Options struct {
	SourceDirs             []string
	Extensions             []string
	MaxLineLength          int
	ClassNameExceptions    []string
	ConstantNameExceptions []string
}

// Result is the outcome of checking a project.
type Result struct {
	FilesChecked int
	Findings     []Finding
}

// Count returns the number of findings for rules, or all findings when no
// rules are given.
func (r Result) Count(rules ...Rule) int {
	if len(rules) == 0 {
		return len(r.Findings)
	}
	n := 0
	for _, f := range r.Findings {
		for _, rule := range rules {
			if f.Rule == rule {
				n++
				break
			}
		}
	}
	return n
}

var (
	classPattern     = regexp.MustCompile(`\bclass\s+([A-Z][a-zA-Z0-9]*)\b`)
	enumClassPattern = regexp.MustCompile(`\benum\s+class\b`)
	constantPattern  = regexp.MustCompile(`\b([A-Z][A-Z0-9]*_[A-Z0-9_]*)\s*[;=]`)
)

// StyleRules and NamingRules group the rules for reporting.
var (
	StyleRules  = []Rule{RuleTabs, RuleLineLength, RuleTrailingWhitespace}
	NamingRules = []Rule{RuleClassName, RuleConstantName}
)

// Checker applies the checks.
type Checker struct {
	opts               Options
	classExceptions    map[string]bool
	constantExceptions map[string]bool
	logger             *zap.Logger
}

// NewChecker creates a Checker. A nil logger disables diagnostics.
func NewChecker(opts Options, logger *zap.Logger) *Checker {
	return &Checker{
		opts:               opts,
		classExceptions:    toSet(opts.ClassNameExceptions),
		constantExceptions: toSet(opts.ConstantNameExceptions),
		logger:             logging.OrNop(logger),
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// CheckLine returns the findings for a single line (without its newline).
func (c *Checker) CheckLine(file string, lineNo int, line string) []Finding {
	var findings []Finding
	add := func(rule Rule, format string, args ...any) {
		findings = append(findings, Finding{File: file, Line: lineNo, Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	if strings.Contains(line, "\t") {
		add(RuleTabs, "Uses tabs instead of spaces")
	}
	if n := len([]rune(line)); c.opts.MaxLineLength > 0 && n > c.opts.MaxLineLength {
		add(RuleLineLength, "Line too long (%d chars)", n)
	}
	if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		add(RuleTrailingWhitespace, "Trailing whitespace")
	}

	if skipNaming(line) {
		return findings
	}

	if !enumClassPattern.MatchString(line) {
		for _, m := range classPattern.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if c.classExceptions[name] || len(name) < 2 || strings.ToUpper(name) == name {
				continue
			}
			add(RuleClassName, "Class '%s' should use camelCase (found PascalCase)", name)
		}
	}

	if !strings.HasPrefix(strings.TrimSpace(line), "#define") {
		for _, m := range constantPattern.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if c.constantExceptions[name] {
				continue
			}
			add(RuleConstantName, "Variable '%s' should use camelCase (found SCREAMING_SNAKE)", name)
		}
	}

	return findings
}

// skipNaming reports lines that naming checks ignore: comments and lines with
// string or character literals.
func skipNaming(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.Contains(trimmed, "*/") {
		return true
	}
	return strings.ContainsAny(line, `"'`)
}

// CheckReader checks every line read from r.
func (c *Checker) CheckReader(file string, r io.Reader) ([]Finding, error) {
	var findings []Finding
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		findings = append(findings, c.CheckLine(file, lineNo, line)...)
	}
	return findings, scanner.Err()
}

// Check walks the configured source directories under root. Missing source
// directories are skipped with a warning; unreadable files are logged and
// skipped.
func (c *Checker) Check(root string) (Result, error) {
	var result Result
	for _, dir := range c.opts.SourceDirs {
		absDir := filepath.Join(root, dir)
		if _, err := os.Stat(absDir); err != nil {
			c.logger.Warn("source directory not found", zap.String(logging.FieldPath, absDir))
			continue
		}

		err := filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !c.matchesExtension(path) {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)

			findings, readErr := c.checkFile(path, rel)
			if readErr != nil {
				c.logger.Warn("could not read source file", zap.String(logging.FieldPath, rel), zap.Error(readErr))
				return nil
			}
			result.FilesChecked++
			result.Findings = append(result.Findings, findings...)
			return nil
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to walk %s: %w", absDir, err)
		}
	}

	sort.SliceStable(result.Findings, func(i, j int) bool {
		a, b := result.Findings[i], result.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return result, nil
}

func (c *Checker) checkFile(path, rel string) ([]Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.CheckReader(rel, f)
}

func (c *Checker) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.opts.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
