package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adjustkit/claimlens/internal/model"
)

// defaultMaxNarrativeBytes caps how much of a narrative file is read.
// FNOL narratives are a few paragraphs; anything near this limit is a
// wrong file, not a long story.
const defaultMaxNarrativeBytes = 1 << 20

// Submission is one claim intake: the narrative (inline or in a file),
// attachment paths, and whatever structured claimant details the intake
// channel collected.
type Submission struct {
	ID       string
	Text     string
	TextFile string
	Images   []string
	Claimant model.ClaimantInfo
}

// Label names the submission in progress output and batch summaries
func (s Submission) Label() string {
	if s.ID != "" {
		return s.ID
	}
	if s.Claimant.Name != "" {
		return s.Claimant.Name
	}
	if s.TextFile != "" {
		return filepath.Base(s.TextFile)
	}
	return "claim"
}

// Loader reads narrative text for submissions
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader. maxBytes caps narrative file reads; zero
// or negative means the default 1 MiB.
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = defaultMaxNarrativeBytes
	}
	return &Loader{maxBytes: maxBytes}
}

// Load returns the submission's narrative, reading the text file when
// no inline text was given
func (l *Loader) Load(sub Submission) (string, error) {
	if strings.TrimSpace(sub.Text) != "" {
		return sub.Text, nil
	}
	if sub.TextFile == "" {
		return "", fmt.Errorf("submission %s has no narrative text", sub.Label())
	}

	file, err := os.Open(sub.TextFile)
	if err != nil {
		return "", fmt.Errorf("open narrative: %w", err)
	}
	defer func() { _ = file.Close() }()

	body, err := io.ReadAll(io.LimitReader(file, l.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read narrative: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("narrative file %s is empty", sub.TextFile)
	}
	return string(body), nil
}

// Manifest file shapes. Claimant details use explicit keys so manifests
// read naturally (policy_number, not policynumber).
type manifestClaimant struct {
	Name         string `yaml:"name"`
	PolicyNumber string `yaml:"policy_number"`
	ContactPhone string `yaml:"contact_phone"`
	ContactEmail string `yaml:"contact_email"`
}

type manifestEntry struct {
	ID       string           `yaml:"id"`
	Text     string           `yaml:"text"`
	TextFile string           `yaml:"text_file"`
	Images   []string         `yaml:"images"`
	Claimant manifestClaimant `yaml:"claimant"`
}

type manifest struct {
	Claims []manifestEntry `yaml:"claims"`
}

// LoadManifest reads a batch manifest: a YAML file with a claims list,
// each entry holding text or text_file plus optional images and
// claimant details. Relative file paths are resolved against the
// manifest's own directory.
func LoadManifest(path string) ([]Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Claims) == 0 {
		return nil, fmt.Errorf("manifest %s contains no claims", path)
	}

	baseDir := filepath.Dir(path)
	subs := make([]Submission, 0, len(m.Claims))
	for i, entry := range m.Claims {
		if strings.TrimSpace(entry.Text) == "" && entry.TextFile == "" {
			return nil, fmt.Errorf("claims[%d]: text or text_file is required", i)
		}

		sub := Submission{
			ID:       entry.ID,
			Text:     entry.Text,
			TextFile: resolvePath(baseDir, entry.TextFile),
			Claimant: model.ClaimantInfo{
				Name:         entry.Claimant.Name,
				PolicyNumber: entry.Claimant.PolicyNumber,
				ContactPhone: entry.Claimant.ContactPhone,
				ContactEmail: entry.Claimant.ContactEmail,
			},
		}
		for _, img := range entry.Images {
			sub.Images = append(sub.Images, resolvePath(baseDir, img))
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// resolvePath anchors relative manifest paths at the manifest directory
func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
