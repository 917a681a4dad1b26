package models

// LoadStatus is the load state of remote data.
type LoadStatus int

const (
	LoadNotAsked LoadStatus = iota
	LoadLoading
	LoadReloading
	LoadSuccess
	LoadFailure
)

func (s LoadStatus) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadReloading:
		return "reloading"
	case LoadSuccess:
		return "success"
	case LoadFailure:
		return "failure"
	default:
		return "notAsked"
	}
}

// MarketsView is the paged market list shown to the user.
type MarketsView struct {
	Status  LoadStatus
	Filters MarketFilters
	Markets []Market
	// Page is zero-based.
	Page     int
	PageSize int
	More     bool
	Err      error
}
