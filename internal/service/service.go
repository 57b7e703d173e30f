// Package service ties the store and the image codec together: the
// upload pipeline, photo listing with attached thumbnails and the
// full dataset reset.
package service

import (
	"bytes"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/msvens/sgallery/internal/dao"
	"github.com/msvens/sgallery/internal/img"
	"go.uber.org/zap"
)

type Gallery struct {
	sgdb *dao.SGDB
	l    *zap.SugaredLogger
}

func NewGallery(sgdb *dao.SGDB) *Gallery {
	l, _ := zap.NewDevelopment()
	return &Gallery{sgdb: sgdb, l: l.Sugar()}
}

// UploadMeta carries the user supplied fields of an upload
type UploadMeta struct {
	Date         string `json:"date" schema:"date"`
	Location     string `json:"location" schema:"location"`
	Photographer string `json:"photographer" schema:"photographer"`
	CategoryId   int64  `json:"categoryId" schema:"categoryId"`
}

// UploadPhoto re-encodes the uploaded file into an optimized original
// and a thumbnail and persists both. The stored photo is returned
func (g *Gallery) UploadPhoto(r io.Reader, filename string, meta UploadMeta) (*dao.Photo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	original, err := img.MakeOptimizedOriginal(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb, err := img.MakeThumbnail(bytes.NewReader(data), img.ThumbMaxWidth)
	if err != nil {
		return nil, err
	}
	now := time.Now().Format(time.RFC3339)
	date := meta.Date
	if date == "" {
		date = now
	}
	photo := &dao.Photo{
		Filename:      filename,
		OriginalPath:  original,
		ThumbnailPath: thumb,
		Date:          date,
		Location:      meta.Location,
		Photographer:  meta.Photographer,
		CategoryId:    meta.CategoryId,
		UploadDate:    now,
	}
	if err = g.sgdb.Photo.Add(photo); err != nil {
		return nil, err
	}
	if err = g.sgdb.Thumb.Put(&dao.Thumbnail{PhotoId: photo.Id, Data: thumb}); err != nil {
		return nil, err
	}
	return photo, nil
}

// Photos lists all photos with their thumbnail data attached
func (g *Gallery) Photos() ([]*dao.Photo, error) {
	photos, err := g.sgdb.Photo.List()
	if err != nil {
		return nil, err
	}
	for _, p := range photos {
		t, err := g.sgdb.Thumb.Get(p.Id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		p.ThumbnailPath = t.Data
	}
	return photos, nil
}

func (g *Gallery) PhotosByCategory(categoryId int64) ([]*dao.Photo, error) {
	return g.sgdb.Photo.ListByCategory(categoryId)
}

func (g *Gallery) DeletePhoto(id int64) (bool, error) {
	return g.sgdb.Photo.Delete(id)
}

// ResetAll wipes photos, thumbnails and categories and reseeds the
// default categories
func (g *Gallery) ResetAll() error {
	g.l.Infow("resetting all gallery data")
	return g.sgdb.ResetAll()
}
