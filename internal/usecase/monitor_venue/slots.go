package monitor_venue

import (
	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/pkg/types"
)

// unknownFieldName имя поля, если сайт его не прислал
const unknownFieldName = "未知场地"

// SlotFilter правила отбора свободных слотов
type SlotFilter struct {
	ExcludedStatuses []domain.SlotStatus // Статусы, которые считаются занятыми
	MinStartMinutes  int                 // Слоты, начинающиеся раньше, отбрасываются
}

// DefaultSlotFilter фильтр по умолчанию: без ORDERED и LOCKED, начало не раньше 18:00
func DefaultSlotFilter() SlotFilter {
	excluded := make([]domain.SlotStatus, len(domain.DefaultExcludedStatuses))
	copy(excluded, domain.DefaultExcludedStatuses)

	return SlotFilter{
		ExcludedStatuses: excluded,
		MinStartMinutes:  domain.DefaultMinStartMinutes,
	}
}

// Accepts проверяет, проходит ли сырой слот фильтр
func (f SlotFilter) Accepts(record domain.SlotRecord) bool {
	for _, status := range f.ExcludedStatuses {
		if record.Status == status {
			return false
		}
	}
	return record.Start >= f.MinStartMinutes
}

// WatchFrom возвращает начало отслеживаемого окна в формате HH:MM
func (f SlotFilter) WatchFrom() string {
	return types.Minutes(f.MinStartMinutes).String()
}

// ParseAvailableSlots превращает матрицу ресурсов в список свободных слотов.
// Порядок результата повторяет порядок полей и слотов во входных данных.
// Функция чистая: повторный вызов на той же матрице дает тот же результат.
func ParseAvailableSlots(matrix *domain.ResourceMatrix, filter SlotFilter) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0)
	if matrix == nil {
		return result
	}

	for _, field := range matrix.Data {
		fieldName := field.FieldName
		if fieldName == "" {
			fieldName = unknownFieldName
		}

		for _, record := range field.FieldResource {
			if !filter.Accepts(record) {
				continue
			}

			result = append(result, domain.AvailableSlot{
				FieldID:      field.FieldID,
				FieldName:    fieldName,
				Time:         types.Range(types.Minutes(record.Start), types.Minutes(record.End)),
				StartMinutes: record.Start,
				EndMinutes:   record.End,
				Price:        float64(record.Price) / domain.PriceMinorUnits,
				Status:       record.Status,
				RecordID:     record.RecordID,
				RawData:      record,
			})
		}
	}

	return result
}
