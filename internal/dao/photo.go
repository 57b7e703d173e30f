package dao

import (
	"github.com/jmoiron/sqlx"
)

type PhotoSQ struct {
	db               *sqlx.DB
	photoFields      []string
	insertIntoPhoto  string
	replaceIntoPhoto string
	updatePhoto      string
}

func NewPhotoSQ(db *sqlx.DB) *PhotoSQ {
	p := &Photo{}
	fields := getStructFields(p)
	return &PhotoSQ{
		db:               db,
		photoFields:      fields,
		insertIntoPhoto:  buildInsertNamed("photo", fields, "id"),
		replaceIntoPhoto: buildReplaceNamed("photo", fields),
		updatePhoto:      buildUpdateNamed("photo", fields, "id"),
	}
}

func (dao *PhotoSQ) Add(p *Photo) error {
	res, err := dao.db.NamedExec(dao.insertIntoPhoto, p)
	if err != nil {
		return err
	}
	p.Id, err = res.LastInsertId()
	return err
}

// AddAll inserts the photos with their existing ids in one transaction
func (dao *PhotoSQ) AddAll(photos []*Photo) error {
	tx, err := dao.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, p := range photos {
		if _, err = tx.NamedExec(dao.replaceIntoPhoto, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (dao *PhotoSQ) Get(id int64) (*Photo, error) {
	ret := &Photo{}
	err := dao.db.Get(ret, "SELECT * FROM photo WHERE id = $1", id)
	return ret, err
}

func (dao *PhotoSQ) Has(id int64) bool {
	return has(dao.db, "photo", "id", id)
}

func (dao *PhotoSQ) List() ([]*Photo, error) {
	ret := []*Photo{}
	err := dao.db.Select(&ret, "SELECT * FROM photo ORDER BY id")
	return ret, err
}

func (dao *PhotoSQ) ListByCategory(categoryId int64) ([]*Photo, error) {
	ret := []*Photo{}
	err := dao.db.Select(&ret, "SELECT * FROM photo WHERE categoryid = $1 ORDER BY id", categoryId)
	return ret, err
}

// ListByDate returns photos whose date lies in [from, to]. Dates are
// RFC 3339 strings so the comparison uses the date index directly
func (dao *PhotoSQ) ListByDate(from, to string) ([]*Photo, error) {
	ret := []*Photo{}
	err := dao.db.Select(&ret, "SELECT * FROM photo WHERE date >= $1 AND date <= $2 ORDER BY date", from, to)
	return ret, err
}

func (dao *PhotoSQ) Update(p *Photo) (*Photo, error) {
	if _, err := dao.db.NamedExec(dao.updatePhoto, p); err != nil {
		return nil, err
	}
	return dao.Get(p.Id)
}

// Delete removes the photo and its thumbnail as one atomic unit
func (dao *PhotoSQ) Delete(id int64) (bool, error) {
	tx, err := dao.db.Beginx()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM photo WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	cnt, _ := res.RowsAffected()
	if _, err = tx.Exec("DELETE FROM thumbnail WHERE photoid = $1", id); err != nil {
		return false, err
	}
	return cnt > 0, tx.Commit()
}

// DeleteBatch removes photos and thumbnails for all ids in one
// transaction. Missing ids are not an error
func (dao *PhotoSQ) DeleteBatch(ids []int64) error {
	tx, err := dao.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, id := range ids {
		if _, err = tx.Exec("DELETE FROM photo WHERE id = $1", id); err != nil {
			return err
		}
		if _, err = tx.Exec("DELETE FROM thumbnail WHERE photoid = $1", id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Replace writes a photo with an explicit id together with its
// thumbnail in one transaction
func (dao *PhotoSQ) Replace(p *Photo, t *Thumbnail) error {
	tx, err := dao.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err = tx.NamedExec(dao.replaceIntoPhoto, p); err != nil {
		return err
	}
	if t != nil {
		stmt := buildReplaceNamed("thumbnail", getStructFields(t))
		if _, err = tx.NamedExec(stmt, t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (dao *PhotoSQ) Clear() error {
	_, err := dao.db.Exec("DELETE FROM photo")
	return err
}
