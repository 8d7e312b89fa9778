package classifier

import "github.com/harrison/curator/internal/models"

// fallbackTable is the static extension→category mapping used when neither a
// custom rule nor the oracle produces an answer.
var fallbackTable = map[string]models.Category{
	"pdf":  models.CategoryDocuments,
	"docx": models.CategoryDocuments,
	"txt":  models.CategoryDocuments,
	"jpg":  models.CategoryImages,
	"png":  models.CategoryImages,
	"gif":  models.CategoryImages,
	"svg":  models.CategoryImages,
	"mp4":  models.CategoryVideos,
	"mov":  models.CategoryVideos,
	"mkv":  models.CategoryVideos,
	"zip":  models.CategoryArchives,
	"rar":  models.CategoryArchives,
	"tar":  models.CategoryArchives,
	"exe":  models.CategoryInstallers,
	"dmg":  models.CategoryInstallers,
	"pkg":  models.CategoryInstallers,
	"js":   models.CategoryCode,
	"ts":   models.CategoryCode,
	"py":   models.CategoryCode,
	"html": models.CategoryCode,
	"mp3":  models.CategoryAudio,
	"wav":  models.CategoryAudio,
	"flac": models.CategoryAudio,
}

// FallbackCategory returns the static table's category for an extension, or
// Unknown when the extension is unmapped.
func FallbackCategory(extension string) models.Category {
	if category, ok := fallbackTable[extension]; ok {
		return category
	}
	return models.CategoryUnknown
}
