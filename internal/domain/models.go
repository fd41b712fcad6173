// Package domain defines the persistence models for the statutory law store
// and the transient values that flow through a single question-answering
// request. The persisted types are mapped with GORM; the transient types are
// created per request and never outlive it.
package domain

// Article is a single numbered section of a law. Rows are produced by an
// external data-loading process and are read-only at request time.
//
// Fields:
//   - Code: canonical law code (e.g. "حقوق_جزا"), part of the composite key.
//   - ID: article number within the law, part of the composite key.
//   - Text: the authoritative statutory text.
type Article struct {
	Code string `json:"code" gorm:"column:code;type:varchar(128);primaryKey"`
	ID   int    `json:"id"   gorm:"column:id;primaryKey;autoIncrement:false"`
	Text string `json:"text" gorm:"column:text;type:text;not null"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// LawAlias maps a human-entered law name or abbreviation to a canonical law
// code. Seeded at deployment time (see cmd/migrate-aliases); read-only at
// request time.
type LawAlias struct {
	Alias   string `json:"alias"    gorm:"column:alias;type:varchar(255);primaryKey"`
	LawCode string `json:"law_code" gorm:"column:law_code;type:varchar(128);not null;index:idx_law_aliases_code"`
}

// TableName returns the database table name for LawAlias.
func (LawAlias) TableName() string { return "law_aliases" }
