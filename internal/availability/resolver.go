// Package availability вычисляет физическое покрытие рабочего времени:
// какие времена начала услуги помещаются в смены мастера. Пакет ничего
// не знает о политике бронирования — покрытие сменами это факт про
// мастера и локацию, политика это правило студии, и они должны
// комбинироваться независимо (вручную созданная менеджером запись
// может обойти политику, но не может выйти за пределы смен).
package availability

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

var (
	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("availability: service duration must be positive")

	// ErrInvalidGranularity возвращается при неположительном шаге сетки слотов
	ErrInvalidGranularity = errors.New("availability: slot granularity must be positive")

	// ErrInvalidInterval возвращается, когда границы смены не образуют
	// корректный интервал — это повреждение данных, а не пустой результат
	ErrInvalidInterval = errors.New("availability: invalid shift interval")
)

// minuteRange полуинтервал [start, end) в минутах от полуночи
type minuteRange struct {
	start int
	end   int
}

// BookableSlots возвращает ленивую последовательность времён начала
// услуги длительностью serviceDurationMinutes в день date по сетке
// granularityMinutes. Учитываются только scheduled-смены; пересекающиеся
// и смежные интервалы предварительно сливаются. Последовательность
// конечна, упорядочена по возрастанию и допускает повторный обход.
// Кандидат входит в результат, только если candidate + duration
// не выходит за конец слитого интервала.
func BookableSlots(
	intervals []domain.ShiftInterval,
	date time.Time,
	loc *time.Location,
	serviceDurationMinutes int,
	granularityMinutes int,
) (iter.Seq[time.Time], error) {
	if serviceDurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if granularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}

	merged, err := mergeScheduled(intervals)
	if err != nil {
		return nil, err
	}

	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	return func(yield func(time.Time) bool) {
		for _, r := range merged {
			for start := r.start; start+serviceDurationMinutes <= r.end; start += granularityMinutes {
				if !yield(midnight.Add(time.Duration(start) * time.Minute)) {
					return
				}
			}
		}
	}, nil
}

// Covers проверяет, что услуга [start, start+duration) целиком
// помещается в один из слитых scheduled-интервалов дня.
func Covers(intervals []domain.ShiftInterval, start time.Time, durationMinutes int, loc *time.Location) (bool, error) {
	if durationMinutes <= 0 {
		return false, ErrInvalidDuration
	}

	merged, err := mergeScheduled(intervals)
	if err != nil {
		return false, err
	}

	local := start.In(loc)
	from := local.Hour()*60 + local.Minute()
	to := from + durationMinutes

	for _, r := range merged {
		if from >= r.start && to <= r.end {
			return true, nil
		}
	}
	return false, nil
}

// mergeScheduled переводит scheduled-интервалы в минуты и сливает
// пересекающиеся и смежные. Модель данных запрещает пересечения,
// слияние защищает резолвер от ошибок материализации шаблонов выше.
func mergeScheduled(intervals []domain.ShiftInterval) ([]minuteRange, error) {
	ranges := make([]minuteRange, 0, len(intervals))

	for i := range intervals {
		iv := &intervals[i]
		if !iv.IsScheduled() {
			continue
		}

		start, err := iv.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: id=%d: %v", ErrInvalidInterval, iv.ID, err)
		}
		end, err := iv.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: id=%d: %v", ErrInvalidInterval, iv.ID, err)
		}
		if start >= end {
			return nil, fmt.Errorf("%w: id=%d: start %s is not before end %s",
				ErrInvalidInterval, iv.ID, iv.StartTime, iv.EndTime)
		}

		ranges = append(ranges, minuteRange{start: start, end: end})
	}

	if len(ranges) == 0 {
		return nil, nil
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}

	return merged, nil
}
