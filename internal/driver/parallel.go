package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/covenant-lang/covenant/internal/lower"
	"github.com/covenant-lang/covenant/internal/source"
)

// SourceExt is the file extension compiled source carries.
const SourceExt = ".cov"

// listSourceFiles returns every SourceExt file under dir, sorted for a
// deterministic compile order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir runs Compile over every source file under dir concurrently
// (the directory-mode CLI rule: every file in a directory is an
// independent compilation unit, so there is no module graph to serialize
// on — each file's result is fully determined by its own content). jobs
// caps concurrency; 0 uses GOMAXPROCS.
func CompileDir(ctx context.Context, dir string, opts lower.Options, jobs int) (*source.FileSet, []Result, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make([]source.FileID, len(files))
	for i, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			return nil, nil, loadErr
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, id := range fileIDs {
		i, id := i, id
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = Compile(fileSet, id, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// CheckDir is CompileDir's diagnostics-only counterpart, used by the
// `covenant check` subcommand's directory mode.
func CheckDir(ctx context.Context, dir string, jobs int) (*source.FileSet, []Result, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make([]source.FileID, len(files))
	for i, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			return nil, nil, loadErr
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, id := range fileIDs {
		i, id := i, id
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = Check(fileSet, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
