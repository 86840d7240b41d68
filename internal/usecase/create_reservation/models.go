package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID             int64     // ID пользователя
	CompanyID          int64     // ID компании-арендатора
	VehiclePlateNumber string    // Госномер автомобиля
	Location           string    // Место парковки, например "Garage/-1/12"
	Services           []int64   // ID услуг из каталога
	Private            bool      // Частная бронь (оплачивает пользователь)
	Mpv                bool      // Минивэн
	StartDate          time.Time // Время сдачи ключей
	CreatedByID        int64     // Кто создал бронь (пользователь или сотрудник)
	Comments           *string   // Комментарий (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64     // ID созданного бронирования
	UserID             int64     // ID пользователя
	CompanyID          int64     // ID компании
	VehiclePlateNumber string    // Госномер
	Location           string    // Место парковки
	State              int       // Состояние жизненного цикла
	Services           []int64   // ID услуг
	Private            bool      // Частная бронь
	Mpv                bool      // Минивэн
	TimeRequirement    int       // Суммарная длительность услуг в минутах
	StartDate          time.Time // Начало
	EndDate            time.Time // Конец (округлен вверх до юнита планирования)
	TotalPrice         float64   // Итоговая стоимость
	Comments           *string   // Комментарий
	CreatedOn          time.Time // Время создания
}
