package store

import (
	"fmt"
	"strings"

	"invdash/internal/data"
)

// listQuery assembles SELECT ... [WHERE] ORDER BY ... LIMIT ... OFFSET ...
// columns maps whitelisted sort keys to SQL expressions; searchCols are LIKE-matched against req.Query.
type listQuery struct {
	selectFrom string
	columns    map[data.SortKey]string
	searchCols []string
	idColumn   string
}

// likeEscaper makes LIKE wildcards in user text match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (q listQuery) build(req data.Request) (string, []any, error) {
	if err := data.ValidatePaging(req.Skip, req.Take); err != nil {
		return "", nil, err
	}

	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(q.selectFrom)

	if term := strings.TrimSpace(req.Query); term != "" && len(q.searchCols) > 0 {
		like := "%" + likeEscaper.Replace(term) + "%"
		conds := make([]string, len(q.searchCols))
		for i, c := range q.searchCols {
			conds[i] = c + ` LIKE ? ESCAPE '\'`
			args = append(args, like)
		}
		b.WriteString(" WHERE (" + strings.Join(conds, " OR ") + ")")
	}

	order := q.idColumn + " ASC"
	if req.Sort.Key != "" {
		col, ok := q.columns[req.Sort.Key]
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", data.ErrUnknownSortKey, req.Sort.Key)
		}
		dir := "ASC"
		if req.Sort.Descending {
			dir = "DESC"
		}
		// id tiebreak keeps pages stable
		order = fmt.Sprintf("%s %s, %s %s", col, dir, q.idColumn, dir)
	}
	b.WriteString(" ORDER BY " + order + " LIMIT ? OFFSET ?")
	args = append(args, req.Take, req.Skip)
	return b.String(), args, nil
}
