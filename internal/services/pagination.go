package services

import (
	"fmt"
	"math"
)

// pageOffset validates a 1-based page token and page size and returns the
// number of records to skip. Tokens whose offset does not fit in an int get
// math.MaxInt, which lies past the last page of any store.
func pageOffset(pageToken, pageSize int) (int, error) {
	if pageToken < 1 {
		return 0, fmt.Errorf("%w: page token must be greater than or equal to 1", ErrInvalidPage)
	}
	if pageSize < 1 {
		return 0, fmt.Errorf("%w: page size must be greater than or equal to 1", ErrInvalidPage)
	}
	if pageToken-1 > math.MaxInt/pageSize {
		return math.MaxInt, nil
	}
	return (pageToken - 1) * pageSize, nil
}
