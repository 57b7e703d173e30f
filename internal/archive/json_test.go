package archive

import (
	"strings"
	"testing"

	"github.com/msvens/sgallery/internal/dao"
)

func TestPhotosJSONRoundTrip(t *testing.T) {
	sgdb := openTestDb(t)
	defer sgdb.Close()
	photos := seedPhotos(t, sgdb, 4)

	transfer := NewTransfer(sgdb)
	sink := &MemSink{}
	if err := transfer.ExportPhotosJSON(sink); err != nil {
		t.Fatalf("could not export photos: %s", err)
	}
	names := sink.Names()
	if len(names) != 1 || !strings.HasPrefix(names[0], "SG-PhotoDB-Data_") {
		t.Fatal("unexpected export file: ", names)
	}
	exported := sink.File(names[0])

	if err := sgdb.Photo.Clear(); err != nil {
		t.Fatal("could not clear photos: ", err)
	}
	if err := transfer.ImportPhotosJSON(exported); err != nil {
		t.Fatalf("could not import photos: %s", err)
	}

	restored, err := sgdb.Photo.List()
	if err != nil {
		t.Fatal("could not list photos: ", err)
	}
	if len(restored) != len(photos) {
		t.Fatalf("expected %d restored photos got %d", len(photos), len(restored))
	}
	for i, p := range restored {
		if *p != *photos[i] {
			t.Error("restored photo does not match: ", p.Filename)
		}
	}

	if err = transfer.ImportPhotosJSON(strings.NewReader("not json")); err == nil {
		t.Error("expected error for malformed photo data")
	}
}

func TestCategoriesJSONRoundTrip(t *testing.T) {
	sgdb := openTestDb(t)
	defer sgdb.Close()
	if _, err := sgdb.Category.Add("Travel", "trips"); err != nil {
		t.Fatal("could not add category: ", err)
	}

	transfer := NewTransfer(sgdb)
	sink := &MemSink{}
	if err := transfer.ExportCategoriesJSON(sink); err != nil {
		t.Fatalf("could not export categories: %s", err)
	}
	names := sink.Names()
	if len(names) != 1 || !strings.HasPrefix(names[0], "SG-Categories_") {
		t.Fatal("unexpected export file: ", names)
	}
	exported := sink.File(names[0])

	//replace the custom set with something else, import restores it
	if err := sgdb.Category.ReplaceCustom([]*dao.Category{
		{Id: 30, Name: "Architecture", CreationDate: "2021-01-01T00:00:00Z"},
	}); err != nil {
		t.Fatal("could not replace categories: ", err)
	}
	if err := transfer.ImportCategoriesJSON(exported); err != nil {
		t.Fatalf("could not import categories: %s", err)
	}

	categories, err := sgdb.Category.List()
	if err != nil {
		t.Fatal("could not list categories: ", err)
	}
	//seven defaults plus the one custom from the export
	if len(categories) != dao.DefaultCategoryBoundary+1 {
		t.Fatalf("expected %d categories got %d", dao.DefaultCategoryBoundary+1, len(categories))
	}
	if !sgdb.Category.HasByName("Travel") {
		t.Error("expected the exported custom category back")
	}
	if sgdb.Category.HasByName("Architecture") {
		t.Error("the replaced custom category should be gone")
	}
}
