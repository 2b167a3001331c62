// Package period описывает фиксированную таблицу периодов подписки.
// Цены и интервалы не подлежат согласованию: месяц — 7, квартал — 21,
// полугодие — 42.
package period

import (
	"fmt"
	"time"
)

// Period — токен периода подписки из запроса клиента.
type Period string

const (
	Month    Period = "month"
	Quarter  Period = "quarter"
	Semester Period = "semester"
)

// ErrUnknown возвращается для периода вне таблицы.
var ErrUnknown = fmt.Errorf("unknown subscription period")

var table = map[Period]struct {
	price  int
	months int
}{
	Month:    {price: 7, months: 1},
	Quarter:  {price: 21, months: 3},
	Semester: {price: 42, months: 6},
}

// Parse проверяет токен периода по таблице.
func Parse(s string) (Period, error) {
	p := Period(s)
	if _, ok := table[p]; !ok {
		return "", ErrUnknown
	}
	return p, nil
}

// Price возвращает цену периода в целых денежных единицах.
func (p Period) Price() int { return table[p].price }

// Months возвращает длину периода в месяцах.
func (p Period) Months() int { return table[p].months }

// End возвращает конец подписки, начатой в start.
func (p Period) End(start time.Time) time.Time {
	return start.AddDate(0, table[p].months, 0)
}
