package articlesync

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/internal/page"
	"github.com/goliatone/go-mdsite/internal/slugs"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// StripBacklinks removes the legacy "back to blog" link from every page in
// the output directory. Each file is handled independently.
func (s *Service) StripBacklinks(ctx context.Context, opts interfaces.StripOptions) (*interfaces.StripResult, error) {
	result := &interfaces.StripResult{
		Processed: []string{},
		Changed:   []string{},
		Failed:    map[string]error{},
	}

	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil {
		return result, catalog.FileSystemError(s.cfg.OutputDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), slugs.HTMLExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		s.logger.Info("articlesync.backlinks.none", "output", s.cfg.OutputDir)
	}

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path := filepath.Join(s.cfg.OutputDir, name)
		changed, err := stripFile(path, opts.DryRun)
		if err != nil {
			result.Failed[name] = err
			errs = append(errs, err)
			s.logger.Error("articlesync.backlinks.failed", "file_name", name, "error", err)
			continue
		}
		result.Processed = append(result.Processed, name)
		if changed {
			result.Changed = append(result.Changed, name)
			s.logger.Info("articlesync.backlinks.stripped", "file_name", name, "dry_run", opts.DryRun)
		}
	}

	s.logger.Info("articlesync.backlinks.completed",
		"processed", len(result.Processed),
		"changed", len(result.Changed),
		"failed", len(result.Failed),
	)
	return result, firstError(errs)
}

func stripFile(path string, dryRun bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, catalog.FileSystemError(path, err)
	}
	out, changed := page.StripBacklinks(data)
	if !changed || dryRun {
		return changed, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, catalog.FileSystemError(path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, catalog.FileSystemError(path, err)
	}
	return true, nil
}
