package source

import (
	"context"
	"fmt"
	"os"

	"github.com/paulvitic/members-admin/table"
)

// File reads the records from a JSON array on disk.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (s *File) Fetch(ctx context.Context) ([]table.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	records, err := table.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return records, nil
}
