package has_available_places

// Response свободные слоты центра в пределах одного дня
type Response struct {
	Dates []string `json:"dates"`
}
