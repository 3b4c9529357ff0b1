package types

import (
	"fmt"
	"math"

	"apartment_rent/utils/errDefs"

	"golang.org/x/exp/constraints"
)

const (
	DefaultRecordsPerPage = 8
	MaxRecordsPerPage     = 100
)

// Window is one page of an ordered result set.
type Window struct {
	PageId         int `json:"page"`
	RecordsPerPage int `json:"recordsPerPage"`
	CurrentRecord  int `json:"currentRecord"`
}

func NewWindow(pageId int, recordsPerPage int) (w Window, err error) {
	if pageId < 1 {
		return w, fmt.Errorf("%w: parameter page needs to be 1 or greater but it is %v", errDefs.ErrInvalidArgument, pageId)
	}
	if recordsPerPage < 1 {
		return w, fmt.Errorf("%w: parameter recordsPerPage needs to be 1 or greater but it is %v", errDefs.ErrInvalidArgument, recordsPerPage)
	}
	if recordsPerPage > MaxRecordsPerPage {
		return w, fmt.Errorf("%w: parameter recordsPerPage needs to be at most %v but it is %v", errDefs.ErrInvalidArgument, MaxRecordsPerPage, recordsPerPage)
	}
	// the first record of the page has to fit in an int
	if pageId-1 > (math.MaxInt-1)/recordsPerPage {
		return w, fmt.Errorf("%w: parameter page %v is out of range", errDefs.ErrInvalidArgument, pageId)
	}
	return Window{
		PageId:         pageId,
		RecordsPerPage: recordsPerPage,
		CurrentRecord:  CurrentRecord(pageId, recordsPerPage),
	}, nil
}

// CurrentRecord returns the 1-based index of the first row on the page.
func CurrentRecord[N constraints.Integer](pageId, recordsPerPage N) N {
	if pageId > 1 {
		return (pageId-1)*recordsPerPage + 1
	}
	return 1
}

// PagesCount is the number of pages needed for total records.
func PagesCount[N constraints.Integer](total, recordsPerPage N) N {
	if total <= 0 {
		return 0
	}
	return (total + recordsPerPage - 1) / recordsPerPage
}
