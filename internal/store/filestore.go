package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/mempocket/mempocket/internal/model"
)

// Partition directory names under the store root.
const (
	entriesDir   = "entries"
	inboxDir     = "inbox"
	proposalsDir = "proposals"
	runsDir      = "runs"
	indexFile    = "index.json"
)

// listConcurrency bounds parallel record reads when scanning a partition.
const listConcurrency = 8

// FileStore persists every record as one JSON document under a per-kind
// partition directory. The design assumes a single writer; writes are
// whole-file replacements.
type FileStore struct {
	fs   afero.Fs
	root string

	entries   collection[model.Entry]
	inputs    collection[model.Input]
	proposals collection[model.Proposal]
	runs      collection[model.RunReport]
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file store rooted at root on the given filesystem.
func NewFileStore(fsys afero.Fs, root string) *FileStore {
	return &FileStore{
		fs:        fsys,
		root:      root,
		entries:   collection[model.Entry]{fs: fsys, dir: filepath.Join(root, entriesDir)},
		inputs:    collection[model.Input]{fs: fsys, dir: filepath.Join(root, inboxDir)},
		proposals: collection[model.Proposal]{fs: fsys, dir: filepath.Join(root, proposalsDir)},
		runs:      collection[model.RunReport]{fs: fsys, dir: filepath.Join(root, runsDir)},
	}
}

// Root returns the store's root directory.
func (s *FileStore) Root() string {
	return s.root
}

// Init creates the partition layout and seeds an empty index if none exists.
func (s *FileStore) Init(ctx context.Context) error {
	for _, dir := range []string{s.root, s.entries.dir, s.inputs.dir, s.proposals.dir, s.runs.dir} {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "store: create partition")
		}
	}
	if _, err := s.fs.Stat(filepath.Join(s.root, indexFile)); errors.Is(err, fs.ErrNotExist) {
		return s.SaveIndex(ctx, model.NewIndex())
	}
	return nil
}

// --- Entries ---

func (s *FileStore) SaveEntry(_ context.Context, entry *model.Entry) error {
	return s.entries.save(entry.ID, entry)
}

func (s *FileStore) GetEntry(_ context.Context, id string) (*model.Entry, error) {
	return s.entries.get(id)
}

// ListEntries returns entries passing the filter, most recently updated first.
func (s *FileStore) ListEntries(_ context.Context, filter EntryFilter) ([]model.Entry, error) {
	all, err := s.entries.list()
	if err != nil {
		return nil, err
	}
	filtered := all[:0]
	for _, e := range all {
		if filter.Matches(&e) {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})
	return filtered, nil
}

func (s *FileStore) DeleteEntry(_ context.Context, id string) error {
	return s.entries.remove(id)
}

// --- Inputs ---

func (s *FileStore) SaveInput(_ context.Context, input *model.Input) error {
	return s.inputs.save(input.ID, input)
}

func (s *FileStore) GetInput(_ context.Context, id string) (*model.Input, error) {
	return s.inputs.get(id)
}

// ListInputs returns inbox items, newest first.
func (s *FileStore) ListInputs(_ context.Context) ([]model.Input, error) {
	all, err := s.inputs.list()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// --- Proposals ---

func (s *FileStore) SaveProposal(_ context.Context, proposal *model.Proposal) error {
	return s.proposals.save(proposal.ID, proposal)
}

func (s *FileStore) GetProposal(_ context.Context, id string) (*model.Proposal, error) {
	return s.proposals.get(id)
}

// ListProposals returns proposals, newest first, optionally pending only.
func (s *FileStore) ListProposals(_ context.Context, pendingOnly bool) ([]model.Proposal, error) {
	all, err := s.proposals.list()
	if err != nil {
		return nil, err
	}
	filtered := all[:0]
	for _, p := range all {
		if pendingOnly && p.Status != model.ProposalPending {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// --- Run reports ---

func (s *FileStore) SaveRun(_ context.Context, run *model.RunReport) error {
	return s.runs.save(run.ID, run)
}

func (s *FileStore) GetRun(_ context.Context, id string) (*model.RunReport, error) {
	return s.runs.get(id)
}

// ListRuns returns run reports, newest first.
func (s *FileStore) ListRuns(_ context.Context) ([]model.RunReport, error) {
	all, err := s.runs.list()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartedAt.After(all[j].StartedAt)
	})
	return all, nil
}

// --- Index ---

func (s *FileStore) SaveIndex(_ context.Context, index *model.Index) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal index")
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.root, indexFile), data, 0o644); err != nil {
		return eris.Wrap(err, "store: write index")
	}
	return nil
}

// GetIndex returns the persisted index, or an empty one when none exists.
// The index is a cache: absence is not an error.
func (s *FileStore) GetIndex(_ context.Context) (*model.Index, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.root, indexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewIndex(), nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: read index")
	}
	var index model.Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal index")
	}
	if index.Links == nil {
		index.Links = make(map[string][]string)
	}
	if index.Backlinks == nil {
		index.Backlinks = make(map[string][]string)
	}
	if index.Tags == nil {
		index.Tags = make(map[string][]string)
	}
	return &index, nil
}

// collection gives every record kind identical save/get/list/delete
// mechanics: one JSON file per record, keyed by id.
type collection[T any] struct {
	fs  afero.Fs
	dir string
}

func (c collection[T]) path(id string) string {
	return filepath.Join(c.dir, id+".json")
}

func (c collection[T]) save(id string, record *T) error {
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return eris.Wrap(err, "store: create partition")
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal record")
	}
	if err := afero.WriteFile(c.fs, c.path(id), data, 0o644); err != nil {
		return eris.Wrap(err, "store: write record")
	}
	return nil
}

func (c collection[T]) get(id string) (*T, error) {
	data, err := afero.ReadFile(c.fs, c.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: read record")
	}
	record := new(T)
	if err := json.Unmarshal(data, record); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal record")
	}
	return record, nil
}

func (c collection[T]) list() ([]T, error) {
	infos, err := afero.ReadDir(c.fs, c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: read partition")
	}

	var (
		mu      sync.Mutex
		records []T
	)
	g := new(errgroup.Group)
	g.SetLimit(listConcurrency)
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}
		name := info.Name()
		g.Go(func() error {
			id := strings.TrimSuffix(name, ".json")
			record, err := c.get(id)
			if err != nil {
				return err
			}
			mu.Lock()
			records = append(records, *record)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (c collection[T]) remove(id string) error {
	err := c.fs.Remove(c.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return eris.Wrap(err, "store: delete record")
	}
	return nil
}
