// Package archive moves photo data in and out of the store in bulk:
// zip archives carrying original payloads plus a metadata manifest,
// and plain JSON files for photo and category records.
package archive

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/msvens/sgallery/internal/dao"
	"github.com/msvens/sgallery/internal/img"
	"go.uber.org/zap"
)

const ManifestName = "metadata.json"

// photos per concurrently processed batch
const ChunkSize = 10

var ErrNothingToExport = errors.New("no photos to export")

// PhotoMetadata is one manifest entry of the originals archive
type PhotoMetadata struct {
	Id           int64  `json:"id"`
	Filename     string `json:"filename"`
	Date         string `json:"date"`
	Location     string `json:"location"`
	Photographer string `json:"photographer"`
	CategoryId   int64  `json:"categoryId"`
	UploadDate   string `json:"uploadDate"`
}

type Transfer struct {
	sgdb *dao.SGDB
	l    *zap.SugaredLogger
}

func NewTransfer(sgdb *dao.SGDB) *Transfer {
	l, _ := zap.NewDevelopment()
	return &Transfer{sgdb: sgdb, l: l.Sugar()}
}

func metadataOf(p *dao.Photo) PhotoMetadata {
	return PhotoMetadata{
		Id:           p.Id,
		Filename:     p.Filename,
		Date:         p.Date,
		Location:     p.Location,
		Photographer: p.Photographer,
		CategoryId:   p.CategoryId,
		UploadDate:   p.UploadDate,
	}
}

// ExportOriginals writes every photo into a store-only zip archive:
// one manifest entry plus one file per photo named by its filename.
// Payload decoding runs concurrently within a chunk, chunks run
// sequentially so progress is monotonic at chunk granularity. A photo
// whose payload cannot be decoded is logged and skipped, it never
// aborts the export. The context is checked between chunks. A failed
// export discards the partial file when the sink supports removal.
func (t *Transfer) ExportOriginals(ctx context.Context, sink Sink, reporter Reporter) error {
	photos, err := t.sgdb.Photo.List()
	if err != nil {
		return err
	}
	total := len(photos)
	if total == 0 {
		return ErrNothingToExport
	}

	name := fmt.Sprintf("SG-Photos-Original_%s.zip", time.Now().Format("2006-01-02"))
	w, err := sink.Create(name)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(w)

	err = t.writeArchive(ctx, zw, photos, reporter)
	if err == nil {
		err = zw.Close()
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		//do not leave a truncated archive behind
		t.discard(sink, name)
		return err
	}
	return nil
}

func (t *Transfer) writeArchive(ctx context.Context, zw *zip.Writer, photos []*dao.Photo, reporter Reporter) error {
	total := len(photos)
	metadata := make([]PhotoMetadata, total)
	for i, p := range photos {
		metadata[i] = metadataOf(p)
	}
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: ManifestName, Method: zip.Store})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(mw)
	enc.SetIndent("", "  ")
	if err = enc.Encode(metadata); err != nil {
		return err
	}

	type payload struct {
		filename string
		data     []byte
		err      error
	}

	processed := 0
	for i := 0; i < total; i += ChunkSize {
		if err = ctx.Err(); err != nil {
			return err
		}
		end := i + ChunkSize
		if end > total {
			end = total
		}
		chunk := photos[i:end]

		//decode payloads concurrently, the zip writer itself is not
		//safe for concurrent use so entries are written afterwards
		payloads := make([]payload, len(chunk))
		var wg sync.WaitGroup
		wg.Add(len(chunk))
		for j, p := range chunk {
			go func(j int, p *dao.Photo) {
				defer wg.Done()
				data, _, err := img.DecodeDataURI(p.OriginalPath)
				payloads[j] = payload{filename: p.Filename, data: data, err: err}
			}(j, p)
		}
		wg.Wait()

		for _, pl := range payloads {
			processed++
			if pl.err != nil {
				t.l.Errorw("skipping photo in export", "filename", pl.filename, zap.Error(pl.err))
				continue
			}
			fw, err := zw.CreateHeader(&zip.FileHeader{Name: pl.filename, Method: zip.Store})
			if err != nil {
				return err
			}
			if _, err = fw.Write(pl.data); err != nil {
				return err
			}
		}
		report(reporter, processed, total)
	}
	return nil
}

// discard drops a partially written transfer file when the sink knows
// how to remove one
func (t *Transfer) discard(sink Sink, name string) {
	d, ok := sink.(interface{ Discard(name string) error })
	if !ok {
		return
	}
	if err := d.Discard(name); err != nil {
		t.l.Errorw("could not discard partial transfer file", "name", name, zap.Error(err))
	}
}
