package dao

import (
	"github.com/jmoiron/sqlx"
)

type ThumbSQ struct {
	db               *sqlx.DB
	thumbFields      []string
	replaceIntoThumb string
}

func NewThumbSQ(db *sqlx.DB) *ThumbSQ {
	t := &Thumbnail{}
	fields := getStructFields(t)
	return &ThumbSQ{db, fields, buildReplaceNamed("thumbnail", fields)}
}

// Put inserts or overwrites the thumbnail for its photo
func (dao *ThumbSQ) Put(t *Thumbnail) error {
	_, err := dao.db.NamedExec(dao.replaceIntoThumb, t)
	return err
}

func (dao *ThumbSQ) Get(photoId int64) (*Thumbnail, error) {
	ret := &Thumbnail{}
	err := dao.db.Get(ret, "SELECT * FROM thumbnail WHERE photoid = $1", photoId)
	return ret, err
}

func (dao *ThumbSQ) Delete(photoId int64) error {
	_, err := dao.db.Exec("DELETE FROM thumbnail WHERE photoid = $1", photoId)
	return err
}

func (dao *ThumbSQ) Clear() error {
	_, err := dao.db.Exec("DELETE FROM thumbnail")
	return err
}
