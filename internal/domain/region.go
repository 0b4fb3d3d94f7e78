package domain

// Region is a filter/sort dimension for ads and activities.
type Region struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
