package dao

import (
	"testing"
)

func TestPhotos(t *testing.T) {
	sgdb := openAndCreateTestDb(t)

	first := testPhoto(1)
	if err := sgdb.Photo.Add(first); err != nil {
		t.Fatal("Could not add photo. Got error: ", err)
	}
	if first.Id == 0 {
		t.Error("expected a store assigned id")
	}
	if !sgdb.Photo.Has(first.Id) {
		t.Error("Expected to find photo: ", first.Id)
	}
	if sgdb.Photo.Has(9999) {
		t.Error("No photo with id 9999 should exist")
	}

	if act, err := sgdb.Photo.Get(first.Id); err != nil {
		t.Error("Expected to get photo got error: ", err)
	} else if *act != *first {
		t.Errorf("Expected %v got %v", *first, *act)
	}
	if _, err := sgdb.Photo.Get(9999); err == nil {
		t.Error("Expected error when getting a missing photo")
	}

	second := testPhoto(2)
	second.CategoryId = first.CategoryId
	if err := sgdb.Photo.Add(second); err != nil {
		t.Fatal("Could not add photo. Got error: ", err)
	}

	if photos, err := sgdb.Photo.List(); err != nil {
		t.Error("got error when retrieving photos: ", err)
	} else if len(photos) != 2 {
		t.Error("expected to get 2 photos got ", len(photos))
	}

	if photos, err := sgdb.Photo.ListByCategory(first.CategoryId); err != nil {
		t.Error("got error when retrieving photos by category: ", err)
	} else if len(photos) != 2 {
		t.Error("expected 2 photos in category got ", len(photos))
	}
	if photos, err := sgdb.Photo.ListByCategory(9999); err != nil {
		t.Error("got error when retrieving photos by category: ", err)
	} else if len(photos) != 0 {
		//filtering on a missing category simply yields nothing
		t.Error("expected 0 photos in missing category got ", len(photos))
	}

	if photos, err := sgdb.Photo.ListByDate("2021-06-01T00:00:00Z", "2021-06-30T23:59:59Z"); err != nil {
		t.Error("got error when retrieving photos by date: ", err)
	} else if len(photos) != 2 {
		t.Error("expected 2 photos in date range got ", len(photos))
	}

	updated := *first
	updated.Location = "Uppsala"
	if act, err := sgdb.Photo.Update(&updated); err != nil {
		t.Error("photo could not be updated: ", err)
	} else if act.Location != "Uppsala" {
		t.Error("expected updated location got ", act.Location)
	}

	deleteAndCloseTestDb(sgdb, t)
}

func TestDeletePhotoCascades(t *testing.T) {
	sgdb := openAndCreateTestDb(t)

	p := testPhoto(1)
	if err := sgdb.Photo.Add(p); err != nil {
		t.Fatal("could not add photo: ", err)
	}
	if err := sgdb.Thumb.Put(&Thumbnail{PhotoId: p.Id, Data: "thumbdata"}); err != nil {
		t.Fatal("could not add thumbnail: ", err)
	}

	if del, err := sgdb.Photo.Delete(p.Id); err != nil {
		t.Error("could not delete photo: ", err)
	} else if !del {
		t.Error("expected delete to report a removed photo")
	}
	if sgdb.Photo.Has(p.Id) {
		t.Error("photo should be gone after delete")
	}
	if _, err := sgdb.Thumb.Get(p.Id); err == nil {
		t.Error("no orphan thumbnail may remain after a photo delete")
	}

	if del, err := sgdb.Photo.Delete(p.Id); err != nil {
		t.Error("deleting a missing photo should not error: ", err)
	} else if del {
		t.Error("deleting a missing photo should report false")
	}
	deleteAndCloseTestDb(sgdb, t)
}

func TestDeleteBatchAndReplace(t *testing.T) {
	sgdb := openAndCreateTestDb(t)

	var ids []int64
	for i := 1; i <= 3; i++ {
		p := testPhoto(i)
		if err := sgdb.Photo.Add(p); err != nil {
			t.Fatal("could not add photo: ", err)
		}
		if err := sgdb.Thumb.Put(&Thumbnail{PhotoId: p.Id, Data: "thumbdata"}); err != nil {
			t.Fatal("could not add thumbnail: ", err)
		}
		ids = append(ids, p.Id)
	}
	//batch delete also accepts ids that do not exist
	if err := sgdb.Photo.DeleteBatch(append(ids[:2:2], 9999)); err != nil {
		t.Error("could not batch delete: ", err)
	}
	if sgdb.Photo.Has(ids[0]) || sgdb.Photo.Has(ids[1]) {
		t.Error("batch deleted photos should be gone")
	}
	if !sgdb.Photo.Has(ids[2]) {
		t.Error("photo outside the batch should remain")
	}
	if _, err := sgdb.Thumb.Get(ids[0]); err == nil {
		t.Error("batch delete should remove thumbnails too")
	}

	replacement := testPhoto(7)
	replacement.Id = ids[2]
	replacement.Location = "Lund"
	thumb := &Thumbnail{PhotoId: ids[2], Data: "newthumb"}
	if err := sgdb.Photo.Replace(replacement, thumb); err != nil {
		t.Error("could not replace photo: ", err)
	}
	if act, err := sgdb.Photo.Get(ids[2]); err != nil {
		t.Error("could not get replaced photo: ", err)
	} else if act.Location != "Lund" {
		t.Error("expected replaced photo data got ", act.Location)
	}
	if act, err := sgdb.Thumb.Get(ids[2]); err != nil {
		t.Error("could not get replaced thumbnail: ", err)
	} else if act.Data != "newthumb" {
		t.Error("expected replaced thumbnail data got ", act.Data)
	}
	deleteAndCloseTestDb(sgdb, t)
}

func TestAddAll(t *testing.T) {
	sgdb := openAndCreateTestDb(t)

	photos := []*Photo{testPhoto(1), testPhoto(2)}
	photos[0].Id = 10
	photos[1].Id = 20
	if err := sgdb.Photo.AddAll(photos); err != nil {
		t.Fatal("could not bulk add photos: ", err)
	}
	if !sgdb.Photo.Has(10) || !sgdb.Photo.Has(20) {
		t.Error("bulk added photos should keep their ids")
	}
	deleteAndCloseTestDb(sgdb, t)
}
