// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	storageTable       = "client_storage"
	storageKeyColumn   = "storage_key"
	storageValueColumn = "storage_value"
	storageUpdatedAt   = "updated_at"
)

// sqlite uses ? placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildSelectValueQuery(key string) (string, []any, error) {
	return psql.
		Select(storageValueColumn).
		From(storageTable).
		Where(sq.Eq{storageKeyColumn: key}).
		ToSql()
}

func buildUpsertValueQuery(key, value string, at time.Time) (string, []any, error) {
	return psql.
		Insert(storageTable).
		Columns(storageKeyColumn, storageValueColumn, storageUpdatedAt).
		Values(key, value, at).
		Suffix("ON CONFLICT(" + storageKeyColumn + ") DO UPDATE SET " +
			storageValueColumn + " = excluded." + storageValueColumn + ", " +
			storageUpdatedAt + " = excluded." + storageUpdatedAt).
		ToSql()
}

func buildDeleteValueQuery(key string) (string, []any, error) {
	return psql.
		Delete(storageTable).
		Where(sq.Eq{storageKeyColumn: key}).
		ToSql()
}
