package domain

// Venue площадка, за которой следит монитор.
// Создается из конфигурации и не меняется за время работы процесса.
type Venue struct {
	ID    string
	Name  string
	Dates []string // Даты в формате YYYY-MM-DD, порядок сохраняется
}

// DisplayName возвращает имя площадки для сообщений, при его отсутствии - ID
func (v Venue) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.ID
}
