package export

import (
	"strings"

	"people-sync/internal/config"
	"people-sync/internal/record"
)

const (
	keyTeams   = "teams"
	keyMembers = "members"
)

// Flatten turns records into rows keyed by column. Columns are the union of
// every row's keys: the first row's keys in order, then new keys as they
// appear. In people mode the teams list is dropped.
func Flatten(records []*record.Record, dataType config.DataType) ([]string, []map[string]any) {
	var columns []string

	seen := map[string]struct{}{}
	rows := make([]map[string]any, 0, len(records))

	for _, rec := range records {
		row := map[string]any{}
		set := func(key string, v any) {
			row[key] = v

			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
		}

		rec.Each(func(key string, v any) {
			if key == keyTeams && dataType == config.DataPeople {
				return
			}

			switch t := v.(type) {
			case *record.Record:
				t.Each(set)
			case []record.Member:
				if key == keyMembers {
					set(key, joinMembers(t))
					return
				}

				set(key, t)
			default:
				set(key, v)
			}
		})

		rows = append(rows, row)
	}

	return columns, rows
}

func joinMembers(members []record.Member) string {
	emails := make([]string, len(members))
	for i, m := range members {
		emails[i] = record.String(m.Email)
	}

	return strings.Join(emails, ",")
}
