package infrastructure

import (
	"mime"
	"strings"

	"github.com/DRSN-tech/storefront/pkg/e"
)

// imageExtensions — форматы изображений товаров, которые принимает витрина.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageExtension возвращает расширение объекта по MIME-типу изображения.
// Параметры типа и регистр игнорируются: "Image/PNG; q=1" даёт "png".
func ImageExtension(mimeType string) (string, error) {
	ext, ok := imageExtensions[normalizeMIME(mimeType)]
	if !ok {
		return "", e.ErrUnsupportedMediaType
	}

	return ext, nil
}

// IsSupportedImage сообщает, можно ли сохранить файл с таким MIME-типом.
func IsSupportedImage(mimeType string) bool {
	_, ok := imageExtensions[normalizeMIME(mimeType)]
	return ok
}

func normalizeMIME(mimeType string) string {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}

	return strings.ToLower(strings.TrimSpace(mimeType))
}
