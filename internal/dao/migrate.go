package dao

import (
	"fmt"
)

// migrate brings the schema to DbVersion using explicit stepwise
// migrations. A step never drops a populated table, it transforms the
// data it finds. A fresh database gets the current schema directly.
func (sgdb *SGDB) migrate() error {
	if !sgdb.tableExists("version") {
		if err := sgdb.CreateTables(); err != nil {
			return err
		}
		_, err := sgdb.Version.Update()
		return err
	}
	v, err := sgdb.Version.Get()
	if err != nil {
		return err
	}
	for v.VersionId < DbVersion {
		logger.Infow("upgrading database", "from", v.VersionId, "to", v.VersionId+1)
		switch v.VersionId {
		case 0:
			// version row existed but the schema was never
			// initialized beyond it
			if err = sgdb.CreateTables(); err != nil {
				return err
			}
		case 1:
			if err = sgdb.upgradeToV2(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("no migration step from version %d", v.VersionId)
		}
		if v, err = sgdb.Version.Update(); err != nil {
			return err
		}
	}
	if v.VersionId > DbVersion {
		return fmt.Errorf("database version %d is newer than %d", v.VersionId, DbVersion)
	}
	return nil
}

// v1 thumbnails had their own rowid key with an index on photoid. v2
// keys them directly by photoid and adds the photo date index. User
// categories are untouched, only missing defaults are restored
func (sgdb *SGDB) upgradeToV2() error {
	tx, err := sgdb.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err = tx.Exec(schemaV1toV2); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return sgdb.RestoreDefaultCategories()
}
