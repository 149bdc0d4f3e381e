package main

import (
	"strconv"

	"wadcat/internal/convert"
)

func renderSummary(result *convert.Result) string {
	if result == nil || result.Catalog == nil {
		return ""
	}
	groups := result.Catalog.Groups()
	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []string{
			group.Code,
			group.Name,
			strconv.Itoa(len(group.Wads)),
			strconv.Itoa(group.RecordCount()),
		})
	}
	footer := []string{
		"Total",
		strconv.Itoa(result.Catalog.Len()) + " codes",
		strconv.Itoa(result.Catalog.WadCount()),
		strconv.Itoa(result.Records),
	}
	return renderTableWithFooter(
		[]string{"Code", "Name", "Wads", "Files"},
		rows,
		footer,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}
