package create_blocker

import "time"

// Request модель запроса на создание блокировки
type Request struct {
	StartDate   time.Time  // Начало блокировки
	EndDate     *time.Time // Конец блокировки, nil = до дальнейшего уведомления
	Comment     *string    // Причина (праздник, ремонт)
	CreatedByID int64      // Сотрудник, создающий блокировку
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID          int64      // ID созданной блокировки
	StartDate   time.Time  // Начало
	EndDate     *time.Time // Конец
	Comment     *string    // Причина
	CreatedByID int64      // Автор
	CreatedOn   time.Time  // Время создания

	// CancelledReservationIDs брони, отмененные каскадом
	CancelledReservationIDs []int64
}
