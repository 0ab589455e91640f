package domain

import "time"

// DateFilter identifica o período selecionado no painel
type DateFilter string

const (
	DateFilterToday  DateFilter = "today"
	DateFilterLast7  DateFilter = "last7"
	DateFilterMonth  DateFilter = "month"
	DateFilterCustom DateFilter = "custom"
)

// CustomRange é o par de datas informado quando o filtro é "custom"
type CustomRange struct {
	From *time.Time
	To   *time.Time
}

// DateBounds é um intervalo inclusivo de datas no formato yyyy-mm-dd,
// sempre calculado no fuso horário de negócio
type DateBounds struct {
	Start    string     `json:"start"`
	End      string     `json:"end"`
	Filter   DateFilter `json:"filter"`
	Fallback bool       `json:"fallback"`
}

// Contains compara as strings de data lexicograficamente
func (b DateBounds) Contains(date string) bool {
	return date >= b.Start && date <= b.End
}

// Days retorna a quantidade de dias do intervalo, incluindo as duas pontas
func (b DateBounds) Days() int {
	start, err := time.Parse(time.DateOnly, b.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(time.DateOnly, b.End)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
