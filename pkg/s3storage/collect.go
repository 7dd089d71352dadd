package s3storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// CollectIcons скачивает все .svg под prefix и собирает коллекцию.
//
// Пути файлов считаются относительно prefix, поэтому подпапки бакета
// дают те же теги, что и подпапки локального каталога.
func CollectIcons(ctx context.Context, store Store, prefix string) (icon.Collection, error) {
	objects, err := store.ListFiles(ctx, prefix)
	if err != nil {
		return icon.Collection{}, fmt.Errorf("list icons: %w", err)
	}

	root := normalizePrefix(prefix)
	var files []icon.File
	for _, obj := range objects {
		if !strings.EqualFold(path.Ext(obj.Key), ".svg") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return icon.Collection{}, err
		}

		data, err := store.DownloadFile(ctx, obj.Key)
		if err != nil {
			return icon.Collection{}, fmt.Errorf("download %s: %w", obj.Key, err)
		}
		files = append(files, icon.File{
			RelPath: strings.TrimPrefix(obj.Key, root),
			Content: data,
		})
	}

	utils.Info("Icons downloaded from bucket", "prefix", root, "objects", len(objects), "svg", len(files))
	return icon.Collect(files), nil
}
