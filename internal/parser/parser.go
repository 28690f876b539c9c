package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"linepatch/internal/store"
	"linepatch/pkg/patch"
)

// document is the on-disk shape of a patch file, shared by the YAML and
// Markdown front ends.
type document struct {
	Path        string  `yaml:"path"`
	Start       *int    `yaml:"start"`
	End         *int    `yaml:"end"`
	Lines       string  `yaml:"lines"`
	Content     *string `yaml:"content"`
	ContentFile string  `yaml:"content_file"`
	Expect      *string `yaml:"expect"`
	ExpectFile  string  `yaml:"expect_file"`
}

// Load reads a patch file, choosing the format from its extension.
func Load(filename string) (patch.File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return patch.File{}, fmt.Errorf("failed to read patch file %s: %w", filename, err)
	}
	baseDir := filepath.Dir(filename)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseYAML(data, baseDir)
	case ".md", ".markdown":
		return ParseMarkdown(data, baseDir)
	default:
		return patch.File{}, fmt.Errorf("unsupported patch file %s: expected .yaml, .yml, .md or .markdown", filename)
	}
}

// ParseYAML decodes a YAML patch document. Relative paths are resolved
// against baseDir.
func ParseYAML(data []byte, baseDir string) (patch.File, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return patch.File{}, fmt.Errorf("parse patch yaml: %w", err)
	}
	return doc.build(baseDir)
}

// ParseLines parses a 1-based inclusive line range such as "1304-1379" or
// "12" into zero-based half-open bounds.
func ParseLines(s string) (start, end int, err error) {
	first, last, isRange := strings.Cut(strings.TrimSpace(s), "-")
	from, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q: %w", s, err)
	}
	to := from
	if isRange {
		to, err = strconv.Atoi(strings.TrimSpace(last))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid line range %q: %w", s, err)
		}
	}
	if from < 1 || to < from {
		return 0, 0, fmt.Errorf("invalid line range %q: lines are 1-based and must not be inverted", s)
	}
	return from - 1, to, nil
}

// build validates the document and turns it into a patch.File.
func (d *document) build(baseDir string) (patch.File, error) {
	d.Path = strings.TrimSpace(d.Path)
	if d.Path == "" {
		return patch.File{}, errors.New("patch file: path is required")
	}

	start, end, err := d.bounds()
	if err != nil {
		return patch.File{}, err
	}

	content, err := d.text("content", d.Content, d.ContentFile, baseDir)
	if err != nil {
		return patch.File{}, err
	}
	if content == nil {
		return patch.File{}, errors.New("patch file: one of content or content_file is required")
	}
	expect, err := d.text("expect", d.Expect, d.ExpectFile, baseDir)
	if err != nil {
		return patch.File{}, err
	}

	spec := patch.Spec{Start: start, End: end, Content: patch.SplitLines(*content)}
	if expect != nil {
		spec.Expect = patch.AnchorLines(*expect)
	}
	if err := spec.CheckShape(); err != nil {
		return patch.File{}, fmt.Errorf("patch file: %w", err)
	}
	return patch.File{Path: resolve(baseDir, d.Path), Spec: spec}, nil
}

func (d *document) bounds() (int, int, error) {
	hasBounds := d.Start != nil || d.End != nil
	switch {
	case d.Lines != "" && hasBounds:
		return 0, 0, errors.New("patch file: use either lines or start/end, not both")
	case d.Lines != "":
		return ParseLines(d.Lines)
	case d.Start == nil || d.End == nil:
		return 0, 0, errors.New("patch file: start and end (or lines) are required")
	default:
		return *d.Start, *d.End, nil
	}
}

// text returns the inline value or the content of the referenced file.
// nil means neither was given.
func (d *document) text(field string, inline *string, file, baseDir string) (*string, error) {
	if inline != nil && file != "" {
		return nil, fmt.Errorf("patch file: use either %s or %s_file, not both", field, field)
	}
	if inline != nil {
		return inline, nil
	}
	if file == "" {
		return nil, nil
	}
	path := resolve(baseDir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patch file: read %s_file %s: %w", field, path, err)
	}
	s := string(data)
	return &s, nil
}

// resolve anchors relative paths at baseDir. URLs and absolute paths pass through.
func resolve(baseDir, p string) string {
	if baseDir == "" || filepath.IsAbs(p) || store.IsURL(p) || strings.HasPrefix(p, "file://") {
		return p
	}
	return filepath.Join(baseDir, p)
}

// set assigns a scalar field by name, as used by the Markdown front end.
func (d *document) set(key, value string) (bool, error) {
	switch strings.ToLower(key) {
	case "path":
		d.Path = value
	case "lines":
		d.Lines = value
	case "content_file":
		d.ContentFile = value
	case "expect_file":
		d.ExpectFile = value
	case "start", "end":
		n, err := strconv.Atoi(value)
		if err != nil {
			return true, fmt.Errorf("patch file: %s must be an integer, got %q", key, value)
		}
		if strings.EqualFold(key, "start") {
			d.Start = &n
		} else {
			d.End = &n
		}
	default:
		return false, nil
	}
	return true, nil
}
