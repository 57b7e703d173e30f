package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/msvens/sgallery/internal/img"
)

// hand-built archive: a manifest plus arbitrary named payloads
func buildArchive(t *testing.T, metadata []PhotoMetadata, files map[string][]byte) *bytes.Reader {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if metadata != nil {
		mw, err := zw.Create(ManifestName)
		if err != nil {
			t.Fatalf("could not create manifest entry: %s", err)
		}
		if err = json.NewEncoder(mw).Encode(metadata); err != nil {
			t.Fatalf("could not write manifest: %s", err)
		}
	}
	for name, data := range files {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("could not create archive entry: %s", err)
		}
		if _, err = fw.Write(data); err != nil {
			t.Fatalf("could not write archive entry: %s", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("could not close archive: %s", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestImportOriginalsRoundTrip(t *testing.T) {
	sgdb := openTestDb(t)
	defer sgdb.Close()
	photos := seedPhotos(t, sgdb, 12)

	transfer := NewTransfer(sgdb)
	sink := &MemSink{}
	if err := transfer.ExportOriginals(context.Background(), sink, nil); err != nil {
		t.Fatalf("could not export originals: %s", err)
	}
	archive := sink.File(sink.Names()[0])

	//wipe the collection, the archive must bring it all back
	if err := sgdb.ResetAll(); err != nil {
		t.Fatalf("could not reset: %s", err)
	}

	reporter := &recordingReporter{}
	err := transfer.ImportOriginalsFrom(context.Background(), bytes.NewReader(archive.Bytes()),
		int64(archive.Len()), reporter, AllOrNothing)
	if err != nil {
		t.Fatalf("could not import originals: %s", err)
	}
	reporter.verify(t)

	restored, err := sgdb.Photo.List()
	if err != nil {
		t.Fatal("could not list photos: ", err)
	}
	if len(restored) != len(photos) {
		t.Fatalf("expected %d restored photos got %d", len(photos), len(restored))
	}
	for i, p := range restored {
		org := photos[i]
		if p.Id != org.Id || p.Filename != org.Filename || p.Date != org.Date ||
			p.Location != org.Location || p.Photographer != org.Photographer ||
			p.CategoryId != org.CategoryId || p.UploadDate != org.UploadDate {
			t.Error("restored photo metadata does not match: ", p.Filename)
		}
		if _, _, err = img.DecodeDataURI(p.OriginalPath); err != nil {
			t.Error("restored original is not decodable: ", err)
		}
		th, err1 := sgdb.Thumb.Get(p.Id)
		if err1 != nil {
			t.Error("expected a regenerated thumbnail: ", err1)
			continue
		}
		if _, _, err = img.DecodeDataURI(th.Data); err != nil {
			t.Error("regenerated thumbnail is not decodable: ", err)
		}
	}
}

func TestImportOriginalsNoManifest(t *testing.T) {
	sgdb := openTestDb(t)
	defer sgdb.Close()

	archive := buildArchive(t, nil, map[string][]byte{"photo.png": pngBytes(t, 16)})
	transfer := NewTransfer(sgdb)
	err := transfer.ImportOriginalsFrom(context.Background(), archive, archive.Size(), nil, AllOrNothing)
	if !errors.Is(err, ErrNoManifest) {
		t.Error("expected ErrNoManifest got ", err)
	}
}

func TestImportOriginalsSkipsUnmatched(t *testing.T) {
	sgdb := openTestDb(t)
	defer sgdb.Close()

	metadata := []PhotoMetadata{
		{Id: 1, Filename: "known.png", Date: "2021-06-01T10:00:00Z", CategoryId: 1, UploadDate: "2021-06-02T10:00:00Z"},
	}
	archive := buildArchive(t, metadata, map[string][]byte{
		"known.png": pngBytes(t, 16),
		"stray.png": pngBytes(t, 16),
	})

	transfer := NewTransfer(sgdb)
	reporter := &recordingReporter{}
	err := transfer.ImportOriginalsFrom(context.Background(), archive, archive.Size(), reporter, AllOrNothing)
	if err != nil {
		t.Fatalf("an unmatched entry should not abort the import: %s", err)
	}
	if photos, err1 := sgdb.Photo.List(); err1 != nil {
		t.Fatal("could not list photos: ", err1)
	} else if len(photos) != 1 {
		t.Error("expected only the matched entry got ", len(photos))
	}
	//skipped entries still count towards completion
	reporter.verify(t)
}

func TestImportOriginalsPolicy(t *testing.T) {
	metadata := []PhotoMetadata{
		{Id: 1, Filename: "broken.png", Date: "2021-06-01T10:00:00Z", CategoryId: 1, UploadDate: "2021-06-02T10:00:00Z"},
		{Id: 2, Filename: "good.png", Date: "2021-06-01T10:00:00Z", CategoryId: 1, UploadDate: "2021-06-02T10:00:00Z"},
	}
	files := map[string][]byte{
		"broken.png": []byte("not an image"),
		"good.png":   pngBytes(t, 16),
	}

	sgdb := openTestDb(t)
	transfer := NewTransfer(sgdb)
	archive := buildArchive(t, metadata, files)
	err := transfer.ImportOriginalsFrom(context.Background(), archive, archive.Size(), nil, AllOrNothing)
	if err == nil {
		t.Error("expected a broken entry to abort a strict import")
	}
	sgdb.Close()

	sgdb = openTestDb(t)
	defer sgdb.Close()
	transfer = NewTransfer(sgdb)
	archive = buildArchive(t, metadata, files)
	err = transfer.ImportOriginalsFrom(context.Background(), archive, archive.Size(), nil, BestEffort)
	if err != nil {
		t.Fatalf("best effort import should not abort: %s", err)
	}
	if !sgdb.Photo.Has(2) {
		t.Error("expected the decodable entry to be imported")
	}
	if sgdb.Photo.Has(1) {
		t.Error("the broken entry should not be imported")
	}
}
