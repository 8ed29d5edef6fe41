package access

import "time"

// Remaining структурированный остаток времени до конца окна доступа.
//
// Часы не ограничены сверху: остаток в несколько суток выражается
// большим числом часов, отдельного поля дней нет.
type Remaining struct {
	Expired bool `json:"expired"` // Истекло ли окно
	Hours   int  `json:"hours"`   // Оставшиеся часы
	Minutes int  `json:"minutes"` // Оставшиеся минуты
	Seconds int  `json:"seconds"` // Оставшиеся секунды
}

// TimeRemaining раскладывает остаток до end на часы, минуты и секунды.
//
// Для end в прошлом или равного now возвращает нулевой остаток с Expired=true.
// Функция чистая и рассчитана на повторный вызов по таймеру: остаток каждый
// раз считается от абсолютной даты окончания, а не декрементируется, поэтому
// результат остаётся корректным после приостановки вкладки.
func TimeRemaining(end, now time.Time) Remaining {
	diff := end.Sub(now)
	if diff <= 0 {
		return Remaining{Expired: true}
	}

	totalSeconds := int(diff / time.Second)
	return Remaining{
		Hours:   totalSeconds / 3600,
		Minutes: (totalSeconds % 3600) / 60,
		Seconds: totalSeconds % 60,
	}
}
