package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel.StatementBuilder с плейсхолдерами PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Insert начинает INSERT запрос в указанную таблицу
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Select начинает SELECT запрос с указанными колонками
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

