package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/sqldump"
	"wp2strapi/internal/wxr"
)

// Source is anything that yields WordPress records. The SQL dump and WXR
// extractors both implement it, but only WXR fills post category/tag
// associations; callers must not assume parity.
type Source interface {
	Name() string
	Posts() ([]domain.Post, error)
	Terms() (domain.Terms, error)
}

var (
	_ Source = (*sqldump.Extractor)(nil)
	_ Source = (*wxr.Document)(nil)
)

// Open picks an extractor by file extension: .sql for dumps, .xml for WXR.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sql":
		e, err := sqldump.Open(path)
		if err != nil {
			return nil, err
		}
		return e, nil
	case ".xml":
		d, err := wxr.Open(path)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("source: unsupported file type %q (want .sql or .xml)", path)
	}
}
