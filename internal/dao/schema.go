package dao

// Schema history:
// v1 keyed thumbnails by their own rowid with a secondary index on
// photoid and had no date index on photo. v2 re-keys thumbnails by the
// owning photo id and indexes photo dates. The v1 to v2 step copies
// thumbnail rows into the new table, it never drops populated data
// without carrying it over.

const schemaV2 = `
CREATE TABLE IF NOT EXISTS photo (
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

CREATE INDEX IF NOT EXISTS photo_categoryid_idx ON photo (categoryid);
CREATE INDEX IF NOT EXISTS photo_date_idx ON photo (date);

CREATE TABLE IF NOT EXISTS category (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	creationdate TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS category_name_idx ON category (name);

CREATE TABLE IF NOT EXISTS thumbnail (
	photoid INTEGER PRIMARY KEY,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS version (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	versionid INTEGER NOT NULL,
	description TEXT
);

INSERT INTO version (id, versionid, description) VALUES (1, 0, 'no version set') ON CONFLICT (id) DO NOTHING;
`

const schemaV1toV2 = `
CREATE TABLE IF NOT EXISTS thumbnail_v2 (
	photoid INTEGER PRIMARY KEY,
	data TEXT NOT NULL
);
INSERT OR REPLACE INTO thumbnail_v2 (photoid, data) SELECT photoid, data FROM thumbnail;
DROP TABLE thumbnail;
ALTER TABLE thumbnail_v2 RENAME TO thumbnail;
CREATE INDEX IF NOT EXISTS photo_date_idx ON photo (date);
`

const deleteSchemaV2 = `
DROP TABLE IF EXISTS photo;
DROP TABLE IF EXISTS category;
DROP TABLE IF EXISTS thumbnail;
DROP TABLE IF EXISTS version;
`
