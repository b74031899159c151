// Package media copies the WordPress uploads tree to the CMS host over SFTP.
package media

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Stats summarises a local uploads tree.
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

func (s Stats) String() string {
	return fmt.Sprintf("%s files in %s directories, %s",
		humanize.Comma(int64(s.Files)), humanize.Comma(int64(s.Dirs)), humanize.Bytes(uint64(s.Bytes)))
}

// Scan walks root and counts regular files and their total size.
func Scan(root string) (Stats, error) {
	var st Stats
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root {
				st.Dirs++
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		st.Files++
		st.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("media: scan %s: %w", root, err)
	}
	return st, nil
}
