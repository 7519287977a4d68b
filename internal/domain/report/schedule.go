package report

import (
	"fmt"
	"time"
)

// ReportWindow devolve o mês-calendário anterior ao instante de referência:
// from é o primeiro instante do mês, to é o último.
func ReportWindow(ref time.Time) (time.Time, time.Time) {
	firstOfCurrent := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	from := firstOfCurrent.AddDate(0, -1, 0)
	to := firstOfCurrent.Add(-time.Millisecond)
	return from, to
}

// NextReportDate avança from em uma cadência. Meses e anos preservam o dia,
// limitado ao tamanho do mês de destino (31 de janeiro vira 28 de fevereiro,
// nunca 3 de março).
func NextReportDate(frequency FrequencyType, from time.Time) time.Time {
	switch frequency {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Yearly:
		return addMonthsClamped(from, 12)
	default:
		return addMonthsClamped(from, 1)
	}
}

func addMonthsClamped(from time.Time, months int) time.Time {
	target := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location()).AddDate(0, months, 0)

	day := from.Day()
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, from.Location()).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(target.Year(), target.Month(), day,
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}

// PeriodLabel formata o intervalo do relatório, ex.: "January 1–31, 2025".
// Intervalos que cruzam meses incluem os dois meses no rótulo.
func PeriodLabel(from, to time.Time) string {
	if from.Year() == to.Year() && from.Month() == to.Month() {
		return fmt.Sprintf("%s %d–%d, %d", from.Month(), from.Day(), to.Day(), to.Year())
	}
	return fmt.Sprintf("%s %d – %s %d, %d", from.Month(), from.Day(), to.Month(), to.Day(), to.Year())
}
