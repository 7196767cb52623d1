package service

const (
	// cacheKeyPrefix is versioned so a change to LoanResult can abandon old entries.
	cacheKeyPrefix = "emi:v1:"
)
