// Package repo implements the read path over the statutory law store,
// backed by GORM. This file provides repository functions for articles and
// law aliases.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only point lookups and
// the alias upsert used by the migration binary.
//
// Error semantics:
//   - When a row is absent, functions return gorm.ErrRecordNotFound (also
//     exported here as ErrNotFound for convenience).
//   - On DB errors (corrupt file, connectivity), the raw gorm error is
//     propagated; the service layer translates it into its "store
//     unavailable" kind.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reblaw/go-law-proxy/internal/domain"
)

// ErrNotFound aliases gorm.ErrRecordNotFound for callers that prefer not to
// import gorm.
var ErrNotFound = gorm.ErrRecordNotFound

// GetArticleText returns the stored text for (code, number), or ErrNotFound.
func GetArticleText(ctx context.Context, db *gorm.DB, code string, number int) (string, error) {
	var a domain.Article
	err := db.WithContext(ctx).
		Select("text").
		Where("code = ? AND id = ?", code, number).
		Take(&a).Error
	if err != nil {
		return "", err
	}
	return a.Text, nil
}

// LawCodeExists reports whether any article row exists for code.
func LawCodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("code = ?", code).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindAlias returns the law code mapped to alias, or ErrNotFound.
func FindAlias(ctx context.Context, db *gorm.DB, alias string) (string, error) {
	var row domain.LawAlias
	err := db.WithContext(ctx).
		Where("alias = ?", alias).
		Take(&row).Error
	if err != nil {
		return "", err
	}
	return row.LawCode, nil
}

// CountArticles returns the total number of article rows. Used as a startup
// plausibility check.
func CountArticles(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Article{}).Count(&n).Error
	return n, err
}

// SeedAliases upserts the given alias → law-code rows (INSERT OR REPLACE
// semantics). It is an administrative operation, not part of the request
// path.
func SeedAliases(ctx context.Context, db *gorm.DB, aliases map[string]string) error {
	for alias, code := range aliases {
		row := domain.LawAlias{Alias: alias, LawCode: code}
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "alias"}},
				DoUpdates: clause.AssignmentColumns([]string{"law_code"}),
			}).
			Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
