package domain

import "time"

// TimeWindow полуоткрытый временной интервал [Start, End)
// Инвариант: Start < End
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Duration возвращает длительность интервала
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsValid возвращает true, если интервал корректен (Start < End)
func (w TimeWindow) IsValid() bool {
	return w.Start.Before(w.End)
}

// Overlaps проверяет реальное пересечение с другим интервалом
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Contains проверяет, что other полностью лежит внутри w
func (w TimeWindow) Contains(other TimeWindow) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

// Clip обрезает интервал по границам bounds
// Если пересечения нет, возвращает пустой интервал (ok = false)
func (w TimeWindow) Clip(bounds TimeWindow) (TimeWindow, bool) {
	start := w.Start
	if start.Before(bounds.Start) {
		start = bounds.Start
	}
	end := w.End
	if end.After(bounds.End) {
		end = bounds.End
	}
	if !start.Before(end) {
		return TimeWindow{}, false
	}
	return TimeWindow{Start: start, End: end}, true
}
