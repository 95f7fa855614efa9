package types

import "fmt"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// Minutes время суток в минутах от полуночи (0-1439)
type Minutes int

// Hours возвращает часовую часть
func (m Minutes) Hours() int {
	return int(m) / 60
}

// Mins возвращает минутную часть
func (m Minutes) Mins() int {
	return int(m) % 60
}

// String форматирует значение как HH:MM.
// Значения за пределами суток не нормализуются: 1500 -> "25:00".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hours(), m.Mins())
}

// Range форматирует интервал как "HH:MM-HH:MM"
func Range(start, end Minutes) string {
	return start.String() + "-" + end.String()
}
