package dao

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"go.uber.org/zap"
)

var ErrDefaultCategory = errors.New("default categories cannot be deleted")
var ErrDuplicateName = errors.New("category name already in use")

type PhotoDAO interface {
	Add(p *Photo) error
	AddAll(photos []*Photo) error
	Get(id int64) (*Photo, error)
	Has(id int64) bool
	List() ([]*Photo, error)
	ListByCategory(categoryId int64) ([]*Photo, error)
	ListByDate(from, to string) ([]*Photo, error)
	Update(p *Photo) (*Photo, error)
	Delete(id int64) (bool, error)
	DeleteBatch(ids []int64) error
	Replace(p *Photo, t *Thumbnail) error
	Clear() error
}

type CategoryDAO interface {
	Add(name, description string) (*Category, error)
	Get(id int64) (*Category, error)
	Has(id int64) bool
	HasByName(name string) bool
	List() ([]*Category, error)
	Update(c *Category) (*Category, error)
	Delete(id int64) error
	ReplaceCustom(categories []*Category) error
}

type ThumbDAO interface {
	Put(t *Thumbnail) error
	Get(photoId int64) (*Thumbnail, error)
	Delete(photoId int64) error
	Clear() error
}

type VersionDAO interface {
	Get() (*Version, error)
	Update() (*Version, error)
	IsCurrent() (bool, error)
}

type SGDB struct {
	db       *sqlx.DB
	Photo    PhotoDAO
	Category CategoryDAO
	Thumb    ThumbDAO
	Version  VersionDAO
}

var logger *zap.SugaredLogger

func init() {
	l, _ := zap.NewDevelopment()
	logger = l.Sugar()
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func NewSGDB(dbPath string) (*SGDB, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		logger.Errorw("could not open database", "path", dbPath, zap.Error(err))
		return nil, err
	}
	//sqlite allows a single writer
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		logger.Errorw("could not ping database", "path", dbPath, zap.Error(err))
		return nil, err
	}
	sgdb := &SGDB{
		db:       db,
		Photo:    NewPhotoSQ(db),
		Category: NewCategorySQ(db),
		Thumb:    NewThumbSQ(db),
		Version:  NewVersionSQ(db),
	}
	return sgdb, nil
}

// OpenSGDB opens the database and brings the schema up to the current
// version, seeding default categories when the category table is new
func OpenSGDB(dbPath string) (*SGDB, error) {
	sgdb, err := NewSGDB(dbPath)
	if err != nil {
		return nil, err
	}
	if err = sgdb.migrate(); err != nil {
		_ = sgdb.Close()
		return nil, err
	}
	return sgdb, nil
}

func (sgdb *SGDB) Close() error {
	return sgdb.db.Close()
}

func (sgdb *SGDB) tableExists(table string) bool {
	var cnt int
	q := "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = $1"
	if err := sgdb.db.QueryRow(q, table).Scan(&cnt); err != nil {
		return false
	}
	return cnt > 0
}

func (sgdb *SGDB) CreateTables() error {
	hadCategories := sgdb.tableExists("category")
	if _, err := sgdb.db.Exec(schemaV2); err != nil {
		return err
	}
	if !hadCategories {
		if err := sgdb.seedDefaultCategories(); err != nil {
			return err
		}
	}
	return nil
}

func (sgdb *SGDB) DeleteTables() error {
	_, err := sgdb.db.Exec(deleteSchemaV2)
	return err
}

func (sgdb *SGDB) seedDefaultCategories() error {
	stmt := buildReplaceNamed("category", getStructFields(&Category{}))
	for _, c := range DefaultCategories() {
		if _, err := sgdb.db.NamedExec(stmt, c); err != nil {
			return fmt.Errorf("could not seed category %s: %w", c.Name, err)
		}
	}
	return nil
}

// RestoreDefaultCategories reinserts any default category that has gone
// missing. User categories are left untouched
func (sgdb *SGDB) RestoreDefaultCategories() error {
	stmt := buildReplaceNamed("category", getStructFields(&Category{}))
	for _, c := range DefaultCategories() {
		if sgdb.Category.Has(c.Id) {
			continue
		}
		if _, err := sgdb.db.NamedExec(stmt, c); err != nil {
			return err
		}
	}
	return nil
}

// ResetAll clears photos, thumbnails and categories and reseeds the
// default categories with fresh timestamps, all in one transaction
func (sgdb *SGDB) ResetAll() error {
	tx, err := sgdb.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"photo", "thumbnail", "category"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	stmt := buildInsertNamed("category", getStructFields(&Category{}))
	for _, c := range DefaultCategories() {
		if _, err = tx.NamedExec(stmt, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}
