package labsite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// copyStatic copies the configured static paths from the content directory
// and the theme's static directory into the output directory.
func (s *Site) copyStatic() error {
	cfg := s.Config
	for _, p := range cfg.StaticPaths {
		rel := strings.TrimSuffix(filepath.ToSlash(p), "/")
		src := filepath.Join(cfg.ContentPath, filepath.FromSlash(rel))
		info, err := os.Stat(src)
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("static path not found", zap.String("path", src))
			continue
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := s.copyAsset(src, s.staticTarget(rel)); err != nil {
				return err
			}
			continue
		}
		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			r, err := filepath.Rel(cfg.ContentPath, path)
			if err != nil {
				return err
			}
			return s.copyAsset(path, s.staticTarget(filepath.ToSlash(r)))
		})
		if err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
	}

	if s.Theme == nil {
		return nil
	}
	themeStatic := s.Theme.StaticDir()
	if _, err := os.Stat(themeStatic); err != nil {
		return nil
	}
	return filepath.WalkDir(themeStatic, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		r, err := filepath.Rel(themeStatic, path)
		if err != nil {
			return err
		}
		return copyFile(path, filepath.Join(cfg.OutputPath, "theme", r))
	})
}

// staticTarget maps a content-relative static path to its output path,
// honouring ExtraPathMetadata.
func (s *Site) staticTarget(rel string) string {
	if to, ok := s.Config.ExtraPathMetadata[rel]; ok {
		rel = to
	}
	return filepath.Join(s.Config.OutputPath, filepath.FromSlash(rel))
}

// copyAsset copies one static file, downscaling oversized images.
func (s *Site) copyAsset(src, dst string) error {
	if !isResizable(src) {
		return copyFile(src, dst)
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	out, resized, err := processImage(f, s.Config.MaxImageWidth)
	f.Close()
	if err != nil {
		s.log.Warn("image not processed, copying as is", zap.String("path", src), zap.Error(err))
		return copyFile(src, dst)
	}
	if !resized {
		return copyFile(src, dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	s.log.Debug("downscaled image", zap.String("path", src), zap.Int("max_width", s.Config.MaxImageWidth))
	return os.WriteFile(dst, out, 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
