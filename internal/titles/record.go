// Package titles holds the static title dataset and the index used to look
// films up by name.
package titles

import (
	"errors"
	"strconv"
)

var (
	// ErrDatasetLoad indicates the dataset file is missing or malformed.
	ErrDatasetLoad = errors.New("title dataset load failed")

	// ErrNotFound indicates no title matched a lookup.
	// This is a negative result, not a failure.
	ErrNotFound = errors.New("title not found")
)

// Record is one row of the title dataset.
type Record struct {
	ID             string `json:"id"`
	TitleType      string `json:"titleType"`
	PrimaryTitle   string `json:"primaryTitle"`
	OriginalTitle  string `json:"originalTitle"`
	IsAdult        bool   `json:"isAdult"`
	StartYear      uint32 `json:"startYear"` // 0 when unknown
	EndYear        string `json:"endYear"`
	RuntimeMinutes string `json:"runtimeMinutes"`
	Genres         string `json:"genres"`
}

// rowFields is the column count of a title.basics row.
const rowFields = 9

// ParseRow converts the cells of one tab-separated dataset row. Rows with the
// wrong number of cells are rejected. An unparsable start year becomes 0.
func ParseRow(cells []string) (Record, bool) {
	if len(cells) != rowFields {
		return Record{}, false
	}
	var year uint32
	if y, err := strconv.ParseUint(cells[5], 10, 32); err == nil {
		year = uint32(y)
	}
	return Record{
		ID:             cells[0],
		TitleType:      cells[1],
		PrimaryTitle:   cells[2],
		OriginalTitle:  cells[3],
		IsAdult:        cells[4] == "1",
		StartYear:      year,
		EndYear:        cells[6],
		RuntimeMinutes: cells[7],
		Genres:         cells[8],
	}, true
}
