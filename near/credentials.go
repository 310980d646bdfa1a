package near

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const keyFileExt = ".json"

// Store is a read-only credential store: a directory tree of <accountId>.json key files.
// Paths returned by a store are filesystem paths under its root and are accepted back by its methods.
type Store struct {
	fs   billy.Filesystem
	root string
}

// NewStore creates a store rooted at root inside fsys
func NewStore(fsys billy.Filesystem, root string) (*Store, error) {
	if root == "" {
		return nil, &ConfigError{Message: "missing credential store"}
	}
	if fsys == nil {
		return nil, &ConfigError{Message: "missing credential store filesystem"}
	}
	return &Store{fs: fsys, root: root}, nil
}

// OpenStore creates a store over the OS filesystem; root is resolved to an absolute path
func OpenStore(root string) (*Store, error) {
	if root == "" {
		return nil, &ConfigError{Message: "missing credential store"}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &ConfigError{Message: "invalid credential store path " + root, Err: err}
	}
	return NewStore(osfs.New(string(filepath.Separator)), abs)
}

// Root returns the store root
func (s *Store) Root() string {
	return s.root
}

// Scan returns every file below the root, at any depth, in lexical order.
// Symbolic links are followed; a link back to a directory already being visited is skipped.
func (s *Store) Scan() ([]string, error) {
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return nil, &NotFoundError{Path: s.root, Err: err}
	}
	if !info.IsDir() {
		// A file root is its own single leaf
		return []string{s.root}, nil
	}

	var files []string
	if err := s.walk(s.root, []os.FileInfo{info}, &files); err != nil {
		return nil, err
	}

	return files, nil
}

// walk appends the leaves below dir; ancestors holds the directories on the current path
func (s *Store) walk(dir string, ancestors []os.FileInfo, files *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return &NotFoundError{Path: dir, Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		path := s.fs.Join(dir, entry.Name())
		if entry.Mode()&os.ModeSymlink != 0 {
			entry, err = s.fs.Stat(path)
			if err != nil {
				return &NotFoundError{Path: path, Err: err}
			}
		}
		if !entry.IsDir() {
			*files = append(*files, path)
			continue
		}
		if visiting(ancestors, entry) {
			continue
		}
		if err := s.walk(path, append(ancestors, entry), files); err != nil {
			return err
		}
	}

	return nil
}

func visiting(ancestors []os.FileInfo, dir os.FileInfo) bool {
	for _, ancestor := range ancestors {
		if os.SameFile(ancestor, dir) {
			return true
		}
	}
	return false
}

// ListAccounts maps account ids to key file paths for files whose path matches networkFilter.
// The filter is a regular expression, so plain network names work as substrings; empty matches everything.
// Duplicate account ids keep the last path in walk order.
func (s *Store) ListAccounts(networkFilter string) (map[string]string, error) {
	filter, err := regexp.Compile(networkFilter)
	if err != nil {
		return nil, &ConfigError{Message: "invalid network filter " + networkFilter, Err: err}
	}

	files, err := s.Scan()
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]string)
	for _, file := range files {
		if !filter.MatchString(file) {
			continue
		}
		accounts[AccountIDFromPath(file)] = file
	}

	return accounts, nil
}

// AccountIDFromPath returns the base name of a key file without the .json extension
func AccountIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), keyFileExt)
}

// Scan lists every file below root on the OS filesystem
func Scan(root string) ([]string, error) {
	store, err := OpenStore(root)
	if err != nil {
		return nil, err
	}
	return store.Scan()
}

// ListAccounts builds the account index of a credential directory on the OS filesystem
func ListAccounts(root, networkFilter string) (map[string]string, error) {
	store, err := OpenStore(root)
	if err != nil {
		return nil, err
	}
	return store.ListAccounts(networkFilter)
}

// notFound reports whether a filesystem error means the path is absent or unreadable
func notFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}
