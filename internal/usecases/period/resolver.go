// Package period converte o filtro de datas do painel em um intervalo inclusivo
// calculado no fuso horário de negócio, independente do relógio do chamador.
package period

import (
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/clock"
)

const lastDays = 7

type Resolver struct {
	location *time.Location
	clock    clock.Clock
}

func NewResolver(location *time.Location, clk clock.Clock) *Resolver {
	if location == nil {
		location = time.UTC
	}
	return &Resolver{location: location, clock: clk}
}

func (r *Resolver) Location() *time.Location {
	return r.location
}

// Now devolve o instante atual já no fuso de negócio
func (r *Resolver) Now() time.Time {
	return r.clock.Now().In(r.location)
}

func (r *Resolver) Resolve(filter domain.DateFilter, custom *domain.CustomRange) domain.DateBounds {
	return Resolve(filter, custom, r.clock.Now(), r.location)
}

// Resolve é pura: mesmo filtro, mesmo intervalo e mesmo instante produzem o mesmo resultado.
// Filtro desconhecido ou "custom" incompleto caem em last7 com Fallback=true.
func Resolve(filter domain.DateFilter, custom *domain.CustomRange, now time.Time, location *time.Location) domain.DateBounds {
	today := now.In(location)
	todayStr := today.Format(time.DateOnly)

	switch filter {
	case domain.DateFilterToday:
		return domain.DateBounds{Start: todayStr, End: todayStr, Filter: filter}

	case domain.DateFilterLast7:
		return lastSevenDays(today, false)

	case domain.DateFilterMonth:
		firstDay := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, location)
		return domain.DateBounds{Start: firstDay.Format(time.DateOnly), End: todayStr, Filter: filter}

	case domain.DateFilterCustom:
		if custom == nil || custom.From == nil || custom.To == nil {
			return lastSevenDays(today, true)
		}

		start := custom.From.In(location).Format(time.DateOnly)
		end := custom.To.In(location).Format(time.DateOnly)
		if start > end {
			start, end = end, start
		}
		return domain.DateBounds{Start: start, End: end, Filter: filter}
	}

	return lastSevenDays(today, true)
}

func lastSevenDays(today time.Time, fallback bool) domain.DateBounds {
	return domain.DateBounds{
		Start:    today.AddDate(0, 0, -(lastDays - 1)).Format(time.DateOnly),
		End:      today.Format(time.DateOnly),
		Filter:   domain.DateFilterLast7,
		Fallback: fallback,
	}
}
