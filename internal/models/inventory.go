package models

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Entry describes one variant as seen on disk.
type Entry struct {
	Name       string
	Repository RepositoryID
	Path       string
	Installed  bool
	Size       uint64
	// Known is false for directories that are not a supported variant name.
	Known bool
}

// Inventory lists every canonical variant followed by any other installed
// directories (legacy alias installs, manual copies), sorted by name.
func (p *Pipeline) Inventory() ([]Entry, error) {
	seen := map[string]bool{}
	var out []Entry

	for _, v := range Canonical {
		e := Entry{Name: v.String(), Repository: Repository(p.Backend, v), Path: p.Path(v), Known: true}
		e.Installed = p.Installed(v)
		if e.Installed {
			e.Size = DirSize(e.Path)
		}
		seen[e.Name] = true
		out = append(out, e)
	}

	dirs, err := p.readDir(p.ModelsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}

	var extra []Entry
	for _, d := range dirs {
		if !d.IsDir() || seen[d.Name()] {
			continue
		}
		e := Entry{Name: d.Name(), Path: filepath.Join(p.ModelsDir, d.Name()), Installed: true}
		if v, err := ParseVariant(d.Name()); err == nil {
			e.Repository = Repository(p.Backend, v)
			e.Known = true
		}
		e.Size = DirSize(e.Path)
		extra = append(extra, e)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Name < extra[j].Name })
	return append(out, extra...), nil
}

// DirSize sums the sizes of regular files under root.
func DirSize(root string) uint64 {
	var total uint64
	filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += uint64(info.Size())
			}
		}
		return nil
	})
	return total
}
