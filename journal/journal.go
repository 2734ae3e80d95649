// Package journal records executed statements as git commits.
//
// Each successful mutating statement becomes one commit whose tree holds
// an append-only run of JSON entries. The journal works entirely at the
// git object level; no worktree files are written.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/mallard-db/mallard/core"
)

const entriesDir = "entries"

// Entry is one journaled statement.
type Entry struct {
	When     time.Time `json:"when"`
	SQL      string    `json:"sql"`
	Bindings string    `json:"bindings"`
	Class    string    `json:"class"`
	Rows     int64     `json:"rows"`
}

// Journal is a git-backed statement journal. One Journal serializes its
// own writes; the identity signs every commit.
type Journal struct {
	mu       sync.Mutex
	repo     *git.Repository
	identity core.Identity
	seq      int
}

// OpenMemory opens a journal backed by in-memory storage.
func OpenMemory(identity core.Identity) (*Journal, error) {
	repo, err := git.Init(memory.NewStorage(), git.WithWorkTree(memfs.New()))
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}
	return &Journal{repo: repo, identity: identity}, nil
}

// Open opens or creates a journal repository under dir.
func Open(dir string, identity core.Identity) (*Journal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("journal dir: %w", err)
	}

	wt := osfs.New(dir)
	gitFS, err := wt.Chroot(".git")
	if err != nil {
		return nil, err
	}
	storer := filesystem.NewStorageWithOptions(gitFS, cache.NewObjectLRUDefault(), filesystem.Options{})

	var repo *git.Repository
	if _, statErr := os.Stat(gitFS.Root()); statErr != nil {
		repo, err = git.Init(storer, git.WithWorkTree(wt))
	} else {
		repo, err = git.Open(storer, wt)
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{repo: repo, identity: identity}
	j.seq = len(j.entryNames())
	return j, nil
}

// Record appends one statement to the journal. It satisfies the engine's
// Recorder capability.
func (j *Journal) Record(sqlText, bindings, class string, rows int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{
		When:     time.Now(),
		SQL:      sqlText,
		Bindings: bindings,
		Class:    class,
		Rows:     rows,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	blob, err := j.createBlob(data)
	if err != nil {
		return err
	}

	head, err := j.headTree()
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%012d.json", j.seq)
	tree, err := j.putPath(head, []string{entriesDir, name}, blob)
	if err != nil {
		return err
	}

	if _, err := j.commit(tree, fmt.Sprintf("%s: %s", class, sqlText)); err != nil {
		return err
	}
	j.seq++
	return nil
}

// History returns the most recent entries, newest first. A limit of zero
// or less returns everything.
func (j *Journal) History(limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	names := j.entryNames()
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		data, err := j.readPath(entriesDir + "/" + name)
		if err != nil {
			return nil, err
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Len returns the number of journaled entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}
