package archive

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/msvens/sgallery/internal/dao"
	"github.com/msvens/sgallery/internal/img"
	"go.uber.org/zap"
)

var ErrNoManifest = errors.New("archive has no metadata.json")

// ImportPolicy decides what a per-item failure does to the rest of an
// import. Export always skips broken items, import historically did
// not, so the caller picks
type ImportPolicy int

const (
	// AllOrNothing aborts the import on the first item failure
	AllOrNothing ImportPolicy = iota
	// BestEffort logs item failures and keeps going
	BestEffort
)

// ImportOriginals restores photos from an originals archive. The
// manifest is mandatory. Any photo and thumbnail matching a manifest
// id is removed first in a single transaction. Every file entry is
// then matched against the manifest by filename, unmatched entries
// are skipped with a log line, matched ones are re-embedded, get a
// freshly generated thumbnail and are persisted together with it in
// one transaction per item. Progress is reported after each file.
func (t *Transfer) ImportOriginals(ctx context.Context, archivePath string, reporter Reporter, policy ImportPolicy) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("could not open archive: %w", err)
	}
	defer zr.Close()
	return t.importArchive(ctx, &zr.Reader, reporter, policy)
}

// ImportOriginalsFrom imports from an already open archive stream
func (t *Transfer) ImportOriginalsFrom(ctx context.Context, r io.ReaderAt, size int64, reporter Reporter, policy ImportPolicy) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("could not open archive: %w", err)
	}
	return t.importArchive(ctx, zr, reporter, policy)
}

func (t *Transfer) importArchive(ctx context.Context, zr *zip.Reader, reporter Reporter, policy ImportPolicy) error {
	metadata, err := readManifest(zr)
	if err != nil {
		return err
	}
	byName := make(map[string]PhotoMetadata, len(metadata))
	ids := make([]int64, len(metadata))
	for i, m := range metadata {
		byName[m.Filename] = m
		ids[i] = m.Id
	}

	//pre-clean everything the manifest references in one transaction
	if err = t.sgdb.Photo.DeleteBatch(ids); err != nil {
		return err
	}

	totalFiles := len(zr.File) - 1
	processed := 0
	for _, f := range zr.File {
		if f.Name == ManifestName {
			continue
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = t.importEntry(f, byName); err != nil {
			if policy == BestEffort {
				t.l.Errorw("skipping archive entry", "entry", f.Name, zap.Error(err))
			} else {
				return fmt.Errorf("entry %s: %w", f.Name, err)
			}
		}
		processed++
		report(reporter, processed, totalFiles)
	}
	return nil
}

func (t *Transfer) importEntry(f *zip.File, byName map[string]PhotoMetadata) error {
	meta, ok := byName[f.Name]
	if !ok {
		//partial or renamed archives degrade gracefully
		t.l.Infow("archive entry has no manifest match, skipping", "entry", f.Name)
		return nil
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("could not read entry: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("could not read entry: %w", err)
	}

	thumb, err := img.MakeImportThumbnail(data)
	if err != nil {
		return err
	}
	photo := &dao.Photo{
		Id:            meta.Id,
		Filename:      meta.Filename,
		OriginalPath:  img.EncodeDataURI(img.SniffFormat(data), data),
		ThumbnailPath: thumb,
		Date:          meta.Date,
		Location:      meta.Location,
		Photographer:  meta.Photographer,
		CategoryId:    meta.CategoryId,
		UploadDate:    meta.UploadDate,
	}
	return t.sgdb.Photo.Replace(photo, &dao.Thumbnail{PhotoId: meta.Id, Data: thumb})
}

func readManifest(zr *zip.Reader) ([]PhotoMetadata, error) {
	for _, f := range zr.File {
		if f.Name != ManifestName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		var metadata []PhotoMetadata
		if err = json.NewDecoder(rc).Decode(&metadata); err != nil {
			return nil, fmt.Errorf("could not parse manifest: %w", err)
		}
		return metadata, nil
	}
	return nil, ErrNoManifest
}
