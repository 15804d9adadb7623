package sources

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"kelp.dev/kelp/kel"
)

// File reads a KEL from a local CESR stream file.
type File struct {
	path   string
	parser *kel.Parser
}

// NewFile constructs a file source for path.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("sources: file path is required")
	}
	return &File{path: path, parser: kel.NewParser()}, nil
}

func (f *File) Description() string {
	return fmt.Sprintf("File: %s", filepath.Base(f.path))
}

func (f *File) FetchEvents(ctx context.Context, aid string) ([]kel.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return filterByAID(f.parser.Parse(data), aid), nil
}

func (f *File) Close() error { return nil }

var fileFlagPath string

func init() {
	MustRegister(Factory{
		Name:        "file",
		Description: "Read a local CESR stream file",
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&fileFlagPath, "file-path", "", "Path to a CESR stream file")
		},
		Open: func() (Source, error) { return NewFile(fileFlagPath) },
	})
}
