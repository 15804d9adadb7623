package grpckel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"kelp.dev/kelp/sources"
)

// aidName restricts lookups to bare qb64 AIDs. This doubles as a path
// traversal guard since the served files live directly under Dir.
var aidName = regexp.MustCompile(`^[A-Za-z0-9_-]{44}$`)

// Provider supplies raw CESR streams by AID.
type Provider interface {
	// Stream returns the raw stream for aid, or sources.ErrNotFound.
	Stream(aid string) ([]byte, error)
	// AIDs lists the identifiers this provider can serve, sorted.
	AIDs() ([]string, error)
}

// DirProvider serves <aid>.cesr files from a directory.
type DirProvider struct {
	Dir string
}

// NewDirProvider validates that dir exists and is a directory.
func NewDirProvider(dir string) (*DirProvider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("grpckel: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("grpckel: %s is not a directory", dir)
	}
	return &DirProvider{Dir: dir}, nil
}

func (p *DirProvider) AIDs() ([]string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, err
	}
	var aids []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".cesr")
		if !ok || e.IsDir() || !aidName.MatchString(name) {
			continue
		}
		aids = append(aids, name)
	}
	sort.Strings(aids)
	return aids, nil
}

func (p *DirProvider) Stream(aid string) ([]byte, error) {
	if !aidName.MatchString(aid) {
		return nil, fmt.Errorf("grpckel: invalid AID %q", aid)
	}
	data, err := os.ReadFile(filepath.Join(p.Dir, aid+".cesr"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, sources.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
