package get_availability

import (
	"sort"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// buildFreeWindows строит свободные интервалы специалиста на диапазоне
// [rangeStart, rangeEnd), вычитая занятые интервалы и обрезая результат
// по рабочим часам каждого календарного дня
//
// Алгоритм:
// 1. Склеиваем пересекающиеся и граничащие занятые интервалы
// 2. Для каждого дня диапазона берем окно рабочих часов, обрезанное по диапазону
// 3. Вычитаем из окна занятые интервалы
// 4. Отбрасываем остатки короче minDuration - в них слот не поместится
//
// Результат упорядочен, интервалы не пересекаются и целиком лежат в рабочих часах
func buildFreeWindows(
	busy []domain.TimeWindow,
	rangeStart time.Time,
	rangeEnd time.Time,
	hours domain.BusinessHours,
	minDuration time.Duration,
) []domain.TimeWindow {
	free := make([]domain.TimeWindow, 0)

	// Пустой или вырожденный диапазон
	if !rangeStart.Before(rangeEnd) {
		return free
	}

	merged := mergeBusyWindows(busy)
	bounds := domain.TimeWindow{Start: rangeStart, End: rangeEnd}

	day := startOfDay(rangeStart)
	for day.Before(rangeEnd) {
		dayWindow, ok := hours.WindowForDate(day).Clip(bounds)
		if ok {
			free = append(free, subtractBusy(dayWindow, merged, minDuration)...)
		}
		day = day.AddDate(0, 0, 1)
	}

	return free
}

// mergeBusyWindows сортирует занятые интервалы по началу и склеивает
// пересекающиеся и граничащие; некорректные интервалы (start >= end) отбрасываются
func mergeBusyWindows(busy []domain.TimeWindow) []domain.TimeWindow {
	valid := make([]domain.TimeWindow, 0, len(busy))
	for _, w := range busy {
		if w.IsValid() {
			valid = append(valid, w)
		}
	}

	if len(valid) == 0 {
		return valid
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	merged := make([]domain.TimeWindow, 0, len(valid))
	current := valid[0]

	for _, w := range valid[1:] {
		// Граничащие интервалы (w.Start == current.End) тоже склеиваем
		if !w.Start.After(current.End) {
			if w.End.After(current.End) {
				current.End = w.End
			}
			continue
		}
		merged = append(merged, current)
		current = w
	}

	return append(merged, current)
}

// subtractBusy вычитает занятые интервалы из окна window
// Занятый интервал, целиком лежащий вне окна, игнорируется;
// частично пересекающийся - обрезается самим проходом
func subtractBusy(window domain.TimeWindow, merged []domain.TimeWindow, minDuration time.Duration) []domain.TimeWindow {
	result := make([]domain.TimeWindow, 0)
	cursor := window.Start

	for _, b := range merged {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(window.End) {
			break
		}

		if b.Start.After(cursor) {
			piece := domain.TimeWindow{Start: cursor, End: minTime(b.Start, window.End)}
			if piece.Duration() >= minDuration {
				result = append(result, piece)
			}
		}

		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	if cursor.Before(window.End) {
		piece := domain.TimeWindow{Start: cursor, End: window.End}
		if piece.Duration() >= minDuration {
			result = append(result, piece)
		}
	}

	return result
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
