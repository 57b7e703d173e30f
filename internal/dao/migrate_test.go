package dao

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

const schemaV1 = `
CREATE TABLE photo (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	originalpath TEXT NOT NULL,
	thumbnailpath TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	location TEXT NOT NULL,
	photographer TEXT NOT NULL,
	categoryid INTEGER NOT NULL,
	uploaddate TEXT NOT NULL
);
CREATE INDEX photo_categoryid_idx ON photo (categoryid);

CREATE TABLE category (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	creationdate TEXT NOT NULL
);

CREATE TABLE thumbnail (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	photoid INTEGER NOT NULL,
	data TEXT NOT NULL
);
CREATE INDEX thumbnail_photoid_idx ON thumbnail (photoid);

CREATE TABLE version (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	versionid INTEGER NOT NULL,
	description TEXT
);
INSERT INTO version (id, versionid, description) VALUES (1, 1, 'v1');
`

// builds an on disk v1 database with existing data so the upgrade has
// something to carry over
func createV1TestDb(t *testing.T, dbPath string) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("could not open v1 database: %s", err)
	}
	defer db.Close()
	if _, err = db.Exec(schemaV1); err != nil {
		t.Fatalf("could not create v1 schema: %s", err)
	}
	for _, c := range DefaultCategories() {
		if c.Id == 3 {
			continue //a missing default should come back on upgrade
		}
		if _, err = db.Exec("INSERT INTO category (id, name, description, creationdate) VALUES ($1, $2, $3, $4)",
			c.Id, c.Name, c.Description, c.CreationDate); err != nil {
			t.Fatalf("could not insert category: %s", err)
		}
	}
	if _, err = db.Exec("INSERT INTO category (id, name, description, creationdate) VALUES (8, 'Travel', '', '2021-01-01T00:00:00Z')"); err != nil {
		t.Fatalf("could not insert category: %s", err)
	}
	if _, err = db.Exec(`INSERT INTO photo (id, filename, originalpath, thumbnailpath, date, location, photographer, categoryid, uploaddate)
		VALUES (1, 'old.jpg', 'data:image/jpeg;base64,b2xk', '', '2020-05-01T10:00:00Z', 'Stockholm', 'ms', 8, '2020-05-02T10:00:00Z')`); err != nil {
		t.Fatalf("could not insert photo: %s", err)
	}
	if _, err = db.Exec("INSERT INTO thumbnail (photoid, data) VALUES (1, 'oldthumb')"); err != nil {
		t.Fatalf("could not insert thumbnail: %s", err)
	}
}

func TestUpgradeV1toV2(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sgallery.db")
	createV1TestDb(t, dbPath)

	sgdb, err := OpenSGDB(dbPath)
	if err != nil {
		t.Fatalf("could not open and migrate database: %s", err)
	}
	defer sgdb.Close()

	if current, err1 := sgdb.Version.IsCurrent(); err1 != nil {
		t.Fatal("could not read version: ", err1)
	} else if !current {
		t.Error("expected database to be at the current version")
	}

	if p, err1 := sgdb.Photo.Get(1); err1 != nil {
		t.Error("expected photo to survive the upgrade: ", err1)
	} else if p.Filename != "old.jpg" {
		t.Error("expected preserved photo data got ", p.Filename)
	}
	if th, err1 := sgdb.Thumb.Get(1); err1 != nil {
		t.Error("expected thumbnail to survive the upgrade: ", err1)
	} else if th.Data != "oldthumb" {
		t.Error("expected preserved thumbnail data got ", th.Data)
	}
	if !sgdb.Category.Has(3) {
		t.Error("expected missing default category to be restored")
	}
	if !sgdb.Category.HasByName("Travel") {
		t.Error("expected custom category to survive the upgrade")
	}
}

func TestOpenFreshDb(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sgallery.db")
	sgdb, err := OpenSGDB(dbPath)
	if err != nil {
		t.Fatalf("could not open fresh database: %s", err)
	}
	defer sgdb.Close()
	if current, err1 := sgdb.Version.IsCurrent(); err1 != nil {
		t.Fatal("could not read version: ", err1)
	} else if !current {
		t.Error("expected a fresh database at the current version")
	}
	if categories, err1 := sgdb.Category.List(); err1 != nil {
		t.Fatal("could not list categories: ", err1)
	} else if len(categories) != DefaultCategoryBoundary {
		t.Error("expected default categories in a fresh database got ", len(categories))
	}
}
