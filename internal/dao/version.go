package dao

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type VersionSQ struct {
	db                *sqlx.DB
	versionFields     []string
	updateVersionStmt string
	getVersionStmt    string
}

func NewVersionSQ(db *sqlx.DB) *VersionSQ {
	v := &Version{}
	fields := getStructFields(v)
	uStmt := buildUpdateNamed("version", fields, "")
	gStmt := fmt.Sprintf("SELECT %s FROM version LIMIT 1", strings.Join(fields, ","))
	return &VersionSQ{db, fields, uStmt, gStmt}
}

func (dao *VersionSQ) Update() (*Version, error) {
	v := Version{DbVersion, DbDescription}
	if _, err := dao.db.NamedExec(dao.updateVersionStmt, &v); err != nil {
		return nil, err
	}
	return dao.Get()
}

func (dao *VersionSQ) Get() (*Version, error) {
	v := Version{}
	err := dao.db.Get(&v, dao.getVersionStmt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (dao *VersionSQ) IsCurrent() (bool, error) {
	if v, err := dao.Get(); err != nil {
		return false, err
	} else {
		return v.VersionId == DbVersion, nil
	}
}
