package dao

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type CategorySQ struct {
	db                 *sqlx.DB
	categoryFields     []string
	insertIntoCategory string
	updateCategory     string
}

func NewCategorySQ(db *sqlx.DB) *CategorySQ {
	c := &Category{}
	fields := getStructFields(c)
	return &CategorySQ{
		db:                 db,
		categoryFields:     fields,
		insertIntoCategory: buildInsertNamed("category", fields, "id"),
		updateCategory:     buildUpdateNamed("category", fields, "id"),
	}
}

func (dao *CategorySQ) Add(name, description string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}
	if dao.HasByName(name) {
		return nil, ErrDuplicateName
	}
	c := &Category{
		Name:         name,
		Description:  description,
		CreationDate: time.Now().Format(time.RFC3339),
	}
	res, err := dao.db.NamedExec(dao.insertIntoCategory, c)
	if err != nil {
		return nil, err
	}
	if c.Id, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return c, nil
}

func (dao *CategorySQ) Get(id int64) (*Category, error) {
	ret := &Category{}
	err := dao.db.Get(ret, "SELECT * FROM category WHERE id = $1", id)
	return ret, err
}

func (dao *CategorySQ) Has(id int64) bool {
	return has(dao.db, "category", "id", id)
}

func (dao *CategorySQ) HasByName(name string) bool {
	return has(dao.db, "category", "name", name)
}

func (dao *CategorySQ) List() ([]*Category, error) {
	ret := []*Category{}
	err := dao.db.Select(&ret, "SELECT * FROM category ORDER BY id")
	return ret, err
}

// Update renames a category. Default categories may be renamed but
// keep their reserved ids
func (dao *CategorySQ) Update(c *Category) (*Category, error) {
	if existing, err := dao.Get(c.Id); err != nil {
		return nil, err
	} else if existing.Name != c.Name && dao.HasByName(c.Name) {
		return nil, ErrDuplicateName
	}
	if _, err := dao.db.NamedExec(dao.updateCategory, c); err != nil {
		return nil, err
	}
	return dao.Get(c.Id)
}

// Delete rejects ids at or below the default boundary before touching
// the collection
func (dao *CategorySQ) Delete(id int64) error {
	if id <= DefaultCategoryBoundary {
		return fmt.Errorf("category %d: %w", id, ErrDefaultCategory)
	}
	_, err := dao.db.Exec("DELETE FROM category WHERE id = $1", id)
	return err
}

// ReplaceCustom replaces all non-default categories with the given
// ones in a single transaction. Entries at or below the default
// boundary are ignored on both sides
func (dao *CategorySQ) ReplaceCustom(categories []*Category) error {
	tx, err := dao.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM category WHERE id > $1", DefaultCategoryBoundary); err != nil {
		return err
	}
	stmt := buildReplaceNamed("category", dao.categoryFields)
	for _, c := range categories {
		if c.Id <= DefaultCategoryBoundary {
			continue
		}
		if _, err = tx.NamedExec(stmt, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}
