package postgres

import (
	"database/sql"
	"errors"
	"strings"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// foldColumn mirrors textnorm.Fold on the database side: unaccent, lowercase,
// collapse whitespace runs and trim. Requires the unaccent extension.
func foldColumn(column string) string {
	return `btrim(regexp_replace(lower(unaccent(` + column + `)), '\s+', ' ', 'g'))`
}

// containsPatterns turns folded values into LIKE patterns matching them as a
// substring, escaping LIKE metacharacters.
func containsPatterns(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, "%"+escapeLike(v)+"%")
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(v string) string {
	return likeEscaper.Replace(v)
}
