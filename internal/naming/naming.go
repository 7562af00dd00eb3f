// Package naming provides deterministic short hashes and physical names for
// resources declared by a stack, plus content hashing of asset directories.
package naming

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// defaultLength defines the hex length of hashes (bits ~ length * 4).
const defaultLength = 6

// ShortHash returns the hex SHA1 prefix of length n (clamped to digest size).
func ShortHash(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	h := fmt.Sprintf("%x", sum)
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// Hashes holds the short hashes derived from a stack name.
type Hashes struct {
	StackName string
	Stack     string
}

// NewHashes computes hashes for the given stack name.
func NewHashes(stack string) Hashes {
	return Hashes{StackName: stack, Stack: ShortHash("mcstack:"+stack, defaultLength)}
}

// PhysicalName returns the provider-facing name of a stack component:
//
//	mcstack-<stack>-<component>-<stackHASH>
func (h Hashes) PhysicalName(component string) string {
	return fmt.Sprintf("mcstack-%s-%s-%s", h.StackName, component, h.Stack)
}

// ContentHash returns the hex SHA256 over the relative paths and contents of
// all regular files below root, in lexical order. A regular file is hashed as
// a single entry with an empty path.
func ContentHash(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return hashFiles(root, []string{""})
	}
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(files)
	return hashFiles(root, files)
}

func hashFiles(root string, files []string) (string, error) {
	h := sha256.New()
	for _, rel := range files {
		path := root
		if rel != "" {
			path = filepath.Join(root, filepath.FromSlash(rel))
		}
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s\x00", rel)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", err
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
