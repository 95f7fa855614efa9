package status

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

// Store хранит в памяти последний результат проверки каждой пары площадка/дата.
// Данные живут только в рамках процесса.
type Store struct {
	mu    sync.RWMutex
	items map[string]domain.PairStatus
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{items: make(map[string]domain.PairStatus)}
}

// Save заменяет результат для пары площадка/дата
func (s *Store) Save(_ context.Context, status domain.PairStatus) error {
	slots := make([]domain.AvailableSlot, len(status.Slots))
	copy(slots, status.Slots)
	status.Slots = slots

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[status.Key()] = status
	return nil
}

// List возвращает все результаты, отсортированные по площадке и дате
func (s *Store) List(_ context.Context) ([]domain.PairStatus, error) {
	s.mu.RLock()
	result := make([]domain.PairStatus, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}
	s.mu.RUnlock()

	sortStatuses(result)
	return result, nil
}

// ListWithSlots возвращает только пары, в которых на последней проверке были свободные слоты
func (s *Store) ListWithSlots(ctx context.Context) ([]domain.PairStatus, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.PairStatus, 0, len(all))
	for _, item := range all {
		if len(item.Slots) > 0 {
			result = append(result, item)
		}
	}
	return result, nil
}

// Retain удаляет пары, ключей которых нет в keep, и возвращает удаленные
func (s *Store) Retain(_ context.Context, keep map[string]struct{}) ([]domain.PairStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]domain.PairStatus, 0)
	for key, item := range s.items {
		if _, ok := keep[key]; ok {
			continue
		}
		removed = append(removed, item)
		delete(s.items, key)
	}

	sortStatuses(removed)
	return removed, nil
}

func sortStatuses(items []domain.PairStatus) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].VenueID != items[j].VenueID {
			return items[i].VenueID < items[j].VenueID
		}
		return items[i].Date < items[j].Date
	})
}
