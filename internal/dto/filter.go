package dto

// ListFilter carries the optional list predicates. The zero value means
// "all active records". Absent filters are omitted from the query, not
// treated as match-empty.
type ListFilter struct {
	Search     string
	Department string
	Status     string
}

// Stats — aggregate view over active records only.
type Stats struct {
	Total        int            `json:"total"`
	Active       int            `json:"active"`
	Inactive     int            `json:"inactive"`
	ByDepartment map[string]int `json:"byDepartment"`
}

// DashboardData — everything the dashboard page shows.
type DashboardData struct {
	Stats       Stats
	Departments int
	Recent      []Employee
}
