package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/msvens/sgallery/internal/dao"
)

// The JSON exporters serialize a whole collection to a dated file, no
// payload extraction and no chunking. Their importers replace
// collection contents: photos are cleared outright, categories keep
// the default entries and only swap the user-created ones.

func (t *Transfer) ExportPhotosJSON(sink Sink) error {
	photos, err := t.sgdb.Photo.List()
	if err != nil {
		return err
	}
	name := fmt.Sprintf("SG-PhotoDB-Data_%s.json", time.Now().Format("2006-01-02"))
	return writeJSON(sink, name, photos)
}

func (t *Transfer) ExportCategoriesJSON(sink Sink) error {
	categories, err := t.sgdb.Category.List()
	if err != nil {
		return err
	}
	name := fmt.Sprintf("SG-Categories_%s.json", time.Now().Format("2006-01-02"))
	return writeJSON(sink, name, categories)
}

func (t *Transfer) ImportPhotosJSON(r io.Reader) error {
	var photos []*dao.Photo
	if err := json.NewDecoder(r).Decode(&photos); err != nil {
		return fmt.Errorf("could not parse photo data: %w", err)
	}
	if err := t.sgdb.Photo.Clear(); err != nil {
		return err
	}
	return t.sgdb.Photo.AddAll(photos)
}

func (t *Transfer) ImportCategoriesJSON(r io.Reader) error {
	var categories []*dao.Category
	if err := json.NewDecoder(r).Decode(&categories); err != nil {
		return fmt.Errorf("could not parse category data: %w", err)
	}
	return t.sgdb.Category.ReplaceCustom(categories)
}

func writeJSON(sink Sink, name string, v interface{}) error {
	w, err := sink.Create(name)
	if err != nil {
		return err
	}
	defer w.Close()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
