// Package export упаковывает выбранные иконки в ZIP архив.
//
// Содержимое архива:
//
//	icons/<name>.svg        (или <name>.svg при FlatOutput)
//	icon-manifest.json      IncludeJSON
//	icon-types.ts           IncludeTypeScript
//	icons-sprite.svg        Sprite
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/s3storage"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/transform"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// Имена служебных файлов архива.
const (
	ManifestFile   = "icon-manifest.json"
	TypeScriptFile = "icon-types.ts"
	SpriteFile     = "icons-sprite.svg"
)

// ErrNothingToExport - нет выбранных иконок.
var ErrNothingToExport = errors.New("no icons selected for export")

// Options - состав архива.
type Options struct {
	IncludeJSON       bool
	IncludeTypeScript bool
	FlatOutput        bool
	IncludeTags       bool
	Sprite            bool
}

// OptionsFrom переводит секцию export конфигурации в Options.
func OptionsFrom(cfg config.ExportConfig) Options {
	return Options{
		IncludeJSON:       cfg.IncludeJSON,
		IncludeTypeScript: cfg.IncludeTypeScript,
		FlatOutput:        cfg.FlatOutput,
		IncludeTags:       cfg.IncludeTags,
		Sprite:            cfg.Sprite,
	}
}

// entry - иконка с уникальным ключом и путём в архиве.
type entry struct {
	icon icon.Icon
	key  string // основа имени, уникальная в архиве
	file string // путь файла в архиве
}

// plan отбирает выбранные иконки и разводит совпадающие имена
// суффиксами -2, -3, ... Ключ уникален во всём архиве: он же ключ манифеста.
func plan(icons []icon.Icon, opts Options) []entry {
	var out []entry
	taken := make(map[string]bool)

	for _, ic := range icons {
		if !ic.Selected {
			continue
		}
		stem, ext := transform.SplitName(ic.Name)
		if ext == "" {
			ext = "svg"
		}

		dir := ""
		if !opts.FlatOutput {
			dir = strings.Trim(ic.Folder, "/")
		}

		key := stem
		for n := 2; taken[key]; n++ {
			key = stem + "-" + strconv.Itoa(n)
		}
		taken[key] = true

		out = append(out, entry{
			icon: ic,
			key:  key,
			file: path.Join(dir, transform.JoinName(key, ext)),
		})
	}
	return out
}

// WriteZip пишет архив в w.
func WriteZip(w io.Writer, icons []icon.Icon, opts Options) error {
	entries := plan(icons, opts)
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	zw := zip.NewWriter(w)

	for _, e := range entries {
		if err := writeFile(zw, e.file, []byte(e.icon.Content)); err != nil {
			return err
		}
	}

	if opts.IncludeJSON {
		data, err := json.MarshalIndent(buildManifest(entries, opts), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal manifest: %w", err)
		}
		if err := writeFile(zw, ManifestFile, data); err != nil {
			return err
		}
	}

	if opts.IncludeTypeScript {
		if err := writeFile(zw, TypeScriptFile, []byte(typeScript(entries, opts))); err != nil {
			return err
		}
	}

	if opts.Sprite {
		if err := writeFile(zw, SpriteFile, []byte(sprite(entries))); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

// Bytes собирает архив в память.
func Bytes(icons []icon.Icon, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, icons, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Publish собирает архив и загружает его в хранилище по ключу key.
func Publish(ctx context.Context, store s3storage.Store, key string, icons []icon.Icon, opts Options) error {
	data, err := Bytes(icons, opts)
	if err != nil {
		return err
	}
	if err := store.Upload(ctx, key, data, "application/zip"); err != nil {
		return fmt.Errorf("publish export: %w", err)
	}
	utils.Info("Export published", "key", key, "bytes", len(data))
	return nil
}

func writeFile(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("zip create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("zip write %s: %w", name, err)
	}
	return nil
}
