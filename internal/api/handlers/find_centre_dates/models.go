package find_centre_dates

// Response список доступных дат центра
type Response struct {
	Dates []string `json:"dates"`
}
