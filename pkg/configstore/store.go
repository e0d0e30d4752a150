// Package configstore implements candidate/active configuration
// management with commit and rollback support, layered on pkg/hconfig's
// tree and remediation primitives.
package configstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

// Store manages the candidate and active configuration for one device.
type Store struct {
	mu        sync.RWMutex
	driver    *hconfig.Driver
	active    *hconfig.Node
	candidate *hconfig.Node
	history   *History
	dirty     bool
	configDir bool // true if in configuration mode
	filePath  string
}

// New creates a Store for the named platform, initially holding an empty
// active configuration.
func New(platformName, filePath string) (*Store, error) {
	driver, err := platform.Get(platformName)
	if err != nil {
		return nil, fmt.Errorf("configstore: %w", err)
	}
	return &Store{
		driver:   driver,
		active:   hconfig.NewRoot(driver),
		history:  NewHistory(50),
		filePath: filePath,
	}, nil
}

// Load reads and parses the active configuration from disk. A missing
// file is not an error: the store starts empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	root, err := hconfig.Parse(s.driver, string(data))
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.active = root
	return nil
}

// Save persists the active configuration to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return os.WriteFile(s.filePath, []byte(hconfig.Render(s.driver, s.active)), 0o644)
}

// EnterConfigure enters configuration mode by cloning the active config
// into the candidate.
func (s *Store) EnterConfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidate = s.cloneActiveLocked()
	s.configDir = true
	s.dirty = false
}

// ExitConfigure exits configuration mode, discarding the candidate.
func (s *Store) ExitConfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidate = nil
	s.configDir = false
	s.dirty = false
}

func (s *Store) cloneActiveLocked() *hconfig.Node {
	dst := hconfig.NewRoot(s.driver)
	for _, c := range s.active.Children {
		c.DeepCopyInto(dst)
	}
	for _, c := range dst.AllChildren() {
		c.IsNewInConfig = false
	}
	return dst
}

// InConfigMode reports whether the store currently has an open candidate.
func (s *Store) InConfigMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configDir
}

// IsDirty reports whether the candidate differs from the active config.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Set parses text in the driver's own syntax and merges it into the
// candidate, creating any missing intermediate nodes (§4.1's
// `add_children_deep` idiom: descend the path, creating nodes that don't
// already exist, leaving siblings untouched).
func (s *Store) Set(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("configstore: not in configuration mode")
	}
	fragment, err := hconfig.Parse(s.driver, text)
	if err != nil {
		return fmt.Errorf("configstore: parse fragment: %w", err)
	}
	upsertInto(s.candidate, fragment)
	s.dirty = true
	return nil
}

// Delete parses text the same way as Set and removes any matching leaf
// nodes from the candidate, leaving ancestors and unrelated siblings in
// place.
func (s *Store) Delete(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("configstore: not in configuration mode")
	}
	fragment, err := hconfig.Parse(s.driver, text)
	if err != nil {
		return fmt.Errorf("configstore: parse fragment: %w", err)
	}
	removeMatching(s.candidate, fragment)
	s.dirty = true
	return nil
}

// upsertInto walks src (a parsed fragment) and ensures every node on its
// paths exists under dst, creating missing nodes as it goes.
func upsertInto(dst, src *hconfig.Node) {
	for _, c := range src.Children {
		d := dst.GetOrAddChild(c.Text)
		d.Negated = c.Negated
		upsertInto(d, c)
	}
}

// removeMatching walks src and deletes any dst descendant whose full path
// matches one of src's leaves, without touching ancestors that still have
// other children.
func removeMatching(dst, src *hconfig.Node) {
	for _, c := range src.Children {
		d := dst.ChildByText(c.Text)
		if d == nil {
			continue
		}
		if c.IsLeaf() {
			d.Delete()
			continue
		}
		removeMatching(d, c)
	}
}

// CommitResult bundles what a successful Commit produced.
type CommitResult struct {
	Remediation *hconfig.Node
	Rollback    *hconfig.Node
}

// Commit computes the remediation that would transition the active
// config to the candidate, then advances the active config to
// Future(active, remediation) — the predicted state after that
// remediation is applied: added lines are carried in, and running lines
// the remediation negates or supersedes (idempotent commands) are
// dropped (§5, §6).
func (s *Store) Commit() (*CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return nil, fmt.Errorf("configstore: not in configuration mode")
	}

	wf, err := hconfig.NewWorkflowRemediation(s.active, s.candidate)
	if err != nil {
		return nil, fmt.Errorf("configstore: commit: %w", err)
	}
	result := &CommitResult{
		Remediation: wf.RemediationConfig(),
		Rollback:    wf.RollbackConfig(),
	}

	s.history.Push(&HistoryEntry{
		Config:    s.cloneActiveLocked(),
		Timestamp: time.Now(),
	})

	s.active = hconfig.Future(s.driver, s.active, result.Remediation)
	s.candidate = s.cloneActiveLocked()
	s.dirty = false

	if s.filePath != "" {
		if err := os.WriteFile(s.filePath, []byte(hconfig.Render(s.driver, s.active)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "configstore: warning: failed to persist commit: %v\n", err)
		}
	}

	return result, nil
}

// RollbackTo reverts the candidate to a previous configuration. n=0
// reverts to the current active config; n>0 reverts to the nth previous
// commit (1 = the commit just before the current active config).
func (s *Store) RollbackTo(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate == nil {
		return fmt.Errorf("configstore: not in configuration mode")
	}
	if n == 0 {
		s.candidate = s.cloneActiveLocked()
		s.dirty = false
		return nil
	}
	entry, err := s.history.Get(n - 1)
	if err != nil {
		return err
	}
	s.candidate = entry.Config
	s.dirty = true
	return nil
}

// ShowCandidate renders the candidate configuration.
func (s *Store) ShowCandidate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.candidate == nil {
		return ""
	}
	return hconfig.Render(s.driver, s.candidate)
}

// ShowActive renders the active configuration.
func (s *Store) ShowActive() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return hconfig.Render(s.driver, s.active)
}

// ShowCompare renders a unified diff between active and candidate.
func (s *Store) ShowCompare() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.candidate == nil {
		return ""
	}
	if hconfig.Render(s.driver, s.active) == hconfig.Render(s.driver, s.candidate) {
		return "[no changes]\n"
	}
	return hconfig.UnifiedDiff(s.driver, s.active, s.candidate)
}

// Driver returns the store's platform driver.
func (s *Store) Driver() *hconfig.Driver {
	return s.driver
}

// ActiveConfig returns the active configuration tree.
func (s *Store) ActiveConfig() *hconfig.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// History returns the store's rollback history.
func (s *Store) History() *History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}

// activeDump is the JSON-friendly shape exported by ExportJSON, mirroring
// the plain-text lines the tree renders to.
type activeDump struct {
	Platform string   `json:"platform"`
	Lines    []string `json:"lines"`
}

// ExportJSON exports the active config as JSON, for tooling that wants a
// stable machine-readable snapshot rather than device syntax.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text := strings.TrimRight(hconfig.Render(s.driver, s.active), "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return json.MarshalIndent(activeDump{Platform: s.driver.Platform, Lines: lines}, "", "  ")
}
