package dao

import (
	"time"
)

// All date fields are stored as RFC 3339 strings. The store keeps the
// same self-describing values that end up in exports and manifests,
// which makes the date index sort chronologically as plain text.

type Photo struct {
	Id            int64  `json:"id"`
	Filename      string `json:"filename"`
	OriginalPath  string `json:"originalPath"`
	ThumbnailPath string `json:"thumbnailPath"`
	Date          string `json:"date"`
	Location      string `json:"location"`
	Photographer  string `json:"photographer"`
	CategoryId    int64  `json:"categoryId"`
	UploadDate    string `json:"uploadDate"`
}

type Category struct {
	Id           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CreationDate string `json:"creationDate"`
}

type Thumbnail struct {
	PhotoId int64  `json:"photoId"`
	Data    string `json:"data"`
}

type Version struct {
	VersionId   int    `json:"versionId"`
	Description string `json:"description"`
}

// Categories with ids at or below this boundary are seeded on first
// initialization and can be renamed but never deleted.
const DefaultCategoryBoundary = 7

const DbVersion = 2
const DbDescription = "thumbnails keyed by photo id, photos indexed by date"

func DefaultCategories() []*Category {
	now := time.Now().Format(time.RFC3339)
	return []*Category{
		{Id: 1, Name: "Family", Description: "Family photos", CreationDate: now},
		{Id: 2, Name: "People", Description: "People and portraits", CreationDate: now},
		{Id: 3, Name: "Landscape", Description: "Landscape photos", CreationDate: now},
		{Id: 4, Name: "Flowers", Description: "Flower photos", CreationDate: now},
		{Id: 5, Name: "Plants", Description: "Plant photos", CreationDate: now},
		{Id: 6, Name: "Birds", Description: "Bird photos", CreationDate: now},
		{Id: 7, Name: "Other", Description: "Everything else", CreationDate: now},
	}
}
