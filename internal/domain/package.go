package domain

import "time"

// Package арендуемый пакет фотобудки, единица, за которую конкурируют бронирования
// Конфликты проверяются строго в рамках одного пакета
type Package struct {
	ID                int64
	Name              string
	BaseDurationHours int // базовая длительность мероприятия; 0 = использовать дефолт движка
	Active            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveBaseDurationMinutes возвращает базовую длительность пакета в минутах
// с запасным значением defaultHours, когда у пакета длительность не задана
func (p *Package) EffectiveBaseDurationMinutes(defaultHours int) int {
	if p.BaseDurationHours > 0 {
		return p.BaseDurationHours * 60
	}
	return defaultHours * 60
}
