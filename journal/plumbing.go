package journal

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// createBlob writes a blob straight into the object store.
func (j *Journal) createBlob(data []byte) (plumbing.Hash, error) {
	obj := j.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("blob writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("blob write: %w", err)
	}
	writer.Close()

	hash, err := j.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("blob store: %w", err)
	}
	return hash, nil
}

// headTree returns the tree of HEAD, or ZeroHash before the first commit.
func (j *Journal) headTree() (plumbing.Hash, error) {
	headRef, err := j.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, nil
	}
	commit, err := j.repo.CommitObject(headRef.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("head commit: %w", err)
	}
	return commit.TreeHash, nil
}

func (j *Journal) treeEntries(treeHash plumbing.Hash) (map[string]object.TreeEntry, error) {
	entries := make(map[string]object.TreeEntry)
	if treeHash == plumbing.ZeroHash {
		return entries, nil
	}

	tree, err := object.GetTree(j.repo.Storer, treeHash)
	if err != nil {
		return nil, fmt.Errorf("get tree: %w", err)
	}
	for _, entry := range tree.Entries {
		entries[entry.Name] = entry
	}
	return entries, nil
}

// buildTree stores a tree from entries, sorted the way git requires.
func (j *Journal) buildTree(entries map[string]object.TreeEntry) (plumbing.Hash, error) {
	slice := make([]object.TreeEntry, 0, len(entries))
	for _, entry := range entries {
		slice = append(slice, entry)
	}
	sort.Slice(slice, func(a, b int) bool {
		nameA, nameB := slice[a].Name, slice[b].Name
		if slice[a].Mode == filemode.Dir {
			nameA += "/"
		}
		if slice[b].Mode == filemode.Dir {
			nameB += "/"
		}
		return nameA < nameB
	})

	tree := &object.Tree{Entries: slice}
	obj := j.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode tree: %w", err)
	}
	hash, err := j.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store tree: %w", err)
	}
	return hash, nil
}

// putPath sets a blob at the given path, rebuilding the trees above it.
func (j *Journal) putPath(treeHash plumbing.Hash, parts []string, blob plumbing.Hash) (plumbing.Hash, error) {
	if len(parts) == 0 {
		return plumbing.ZeroHash, fmt.Errorf("empty path")
	}

	entries, err := j.treeEntries(treeHash)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	name := parts[0]
	if len(parts) == 1 {
		entries[name] = object.TreeEntry{Name: name, Mode: filemode.Regular, Hash: blob}
	} else {
		subTree := plumbing.ZeroHash
		if existing, ok := entries[name]; ok && existing.Mode == filemode.Dir {
			subTree = existing.Hash
		}
		newSubTree, err := j.putPath(subTree, parts[1:], blob)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		entries[name] = object.TreeEntry{Name: name, Mode: filemode.Dir, Hash: newSubTree}
	}

	return j.buildTree(entries)
}

// commit creates a commit of tree on the current branch, signed by the
// journal's identity.
func (j *Journal) commit(treeHash plumbing.Hash, message string) (plumbing.Hash, error) {
	var parents []plumbing.Hash
	headRef, err := j.repo.Head()
	if err == nil {
		parents = []plumbing.Hash{headRef.Hash()}
	}

	sig := object.Signature{
		Name:  j.identity.Name,
		Email: j.identity.Email,
		When:  time.Now(),
	}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}

	obj := j.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode commit: %w", err)
	}
	hash, err := j.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store commit: %w", err)
	}

	branch := plumbing.Master
	if headRef != nil && headRef.Name().IsBranch() {
		branch = headRef.Name()
	}
	ref := plumbing.NewHashReference(branch, hash)
	if err := j.repo.Storer.SetReference(ref); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("update head: %w", err)
	}
	return hash, nil
}

// entryNames lists the entry files in HEAD's tree.
func (j *Journal) entryNames() []string {
	headRef, err := j.repo.Head()
	if err != nil {
		return nil
	}
	commit, err := j.repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil
	}
	sub, err := tree.Tree(entriesDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range sub.Entries {
		if entry.Mode == filemode.Regular {
			names = append(names, entry.Name)
		}
	}
	return names
}

// readPath reads one file from HEAD's tree.
func (j *Journal) readPath(path string) ([]byte, error) {
	headRef, err := j.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("no entries yet")
	}
	commit, err := j.repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("head commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("head tree: %w", err)
	}
	file, err := tree.File(path)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", path, err)
	}
	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", path, err)
	}
	return []byte(content), nil
}
