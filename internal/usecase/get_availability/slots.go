package get_availability

import (
	"sort"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// sliceWindows нарезает свободные интервалы на слоты фиксированной длительности
// Слоты идут встык без пересечений; неполный хвост интервала отбрасывается
func sliceWindows(windows []domain.TimeWindow, duration time.Duration, technicianID string) []domain.Slot {
	slots := make([]domain.Slot, 0)

	for _, w := range windows {
		start := w.Start
		for !start.Add(duration).After(w.End) {
			slots = append(slots, domain.Slot{
				TechnicianID: technicianID,
				Start:        start,
				End:          start.Add(duration),
			})
			start = start.Add(duration)
		}
	}

	return slots
}

// dropSlotsBefore отбрасывает слоты, начинающиеся раньше границы cutoff
// Сами границы слотов при этом не сдвигаются
func dropSlotsBefore(slots []domain.Slot, cutoff time.Time) []domain.Slot {
	kept := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.Start.Before(cutoff) {
			kept = append(kept, slot)
		}
	}
	return kept
}

// groupSlotsByDate группирует слоты всех специалистов по календарным датам
//
// Внутри даты слоты сортируются по времени начала (при равенстве - по специалисту,
// чтобы выдача была детерминированной). Одинаковые окна разных специалистов
// сохраняются как отдельные слоты - каждый бронируется независимо; дубликаты
// с одинаковой тройкой (start, end, technicianId) схлопываются.
// Даты без слотов в результат не попадают
func groupSlotsByDate(slots []domain.Slot) []domain.DateEntry {
	if len(slots) == 0 {
		return []domain.DateEntry{}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		if !slots[i].End.Equal(slots[j].End) {
			return slots[i].End.Before(slots[j].End)
		}
		return slots[i].TechnicianID < slots[j].TechnicianID
	})

	byDate := make(map[string][]domain.Slot)
	dates := make([]string, 0)

	for _, slot := range slots {
		date := slot.Start.Format(domain.DateFormat)

		existing := byDate[date]
		if len(existing) > 0 && existing[len(existing)-1].Equal(slot) {
			// Дубликат (start, end, technicianId) - пропускаем
			continue
		}

		if _, ok := byDate[date]; !ok {
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], slot)
	}

	sort.Strings(dates)

	entries := make([]domain.DateEntry, 0, len(dates))
	for _, date := range dates {
		entries = append(entries, domain.DateEntry{
			Date:  date,
			Slots: byDate[date],
		})
	}

	return entries
}
