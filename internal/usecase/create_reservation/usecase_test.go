package create_reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/tenantservice"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// --- фейки зависимостей ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	created := *r
	created.ID = f.nextID
	created.CreatedOn = time.Now()
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeReservationRepo) CountActiveByUser(_ context.Context, userID int64, excludeID *int64) (int, error) {
	count := 0
	for _, r := range f.reservations {
		if r.UserID != userID || !r.IsActive() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeReservationRepo) CountByCompanyOnDate(_ context.Context, companyID int64, date time.Time, excludeID *int64) (int, error) {
	count := 0
	for _, r := range f.reservations {
		if r.CompanyID != companyID || !r.SameDay(date) {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeReservationRepo) GetOverlapping(_ context.Context, from time.Time, to *time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if !r.End().After(from) {
			continue
		}
		if to != nil && !r.StartDate.Before(*to) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

type fakeBlockerRepo struct {
	blockers []*domain.Blocker
}

func (f *fakeBlockerRepo) GetOverlapping(_ context.Context, from, to time.Time) ([]*domain.Blocker, error) {
	var result []*domain.Blocker
	for _, b := range f.blockers {
		if b.OverlapsInterval(from, &to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeTenantClient struct {
	company *domain.Company
	err     error
}

func (f *fakeTenantClient) GetCompany(_ context.Context, _ int64) (*domain.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

type fakeConfig struct {
	cfg domain.EngineConfig
}

func (f *fakeConfig) EngineConfig() domain.EngineConfig {
	return f.cfg
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

// 2 июня 2025, понедельник
var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func testEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		Settings: domain.ReservationSettings{
			TimeUnitMinutes:                    30,
			UserConcurrentReservationLimit:     2,
			MinutesToAllowReserveInPast:        15,
			HoursAfterCompanyLimitIsNotChecked: 17,
		},
		Slots: domain.SlotTable{
			Monday: []domain.Slot{
				{StartTime: "08:00", EndTime: "11:00", Capacity: 1},
				{StartTime: "11:00", EndTime: "18:00", Capacity: 2},
			},
		},
		Catalog: domain.NewServiceCatalog([]domain.Service{
			{ID: 1, Name: "Wash", TimeInMinutes: 60, Price: 1500, PriceMpv: 2000},
			{ID: 2, Name: "Wax", TimeInMinutes: 20, Price: 500},
		}),
	}
}

type env struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	blockers     *fakeBlockerRepo
	tenant       *fakeTenantClient
	clock        *fakeTime
}

func newEnv() *env {
	reservations := &fakeReservationRepo{}
	blockers := &fakeBlockerRepo{}
	tenant := &fakeTenantClient{company: &domain.Company{ID: 1, Name: "Acme", DailyLimit: 5}}
	clock := &fakeTime{now: at(7, 0)}

	uc := NewUseCase(reservations, blockers, tenant, &fakeConfig{cfg: testEngineConfig()}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = clock

	return &env{uc: uc, reservations: reservations, blockers: blockers, tenant: tenant, clock: clock}
}

func validRequest() *Request {
	return &Request{
		UserID:             10,
		CompanyID:          1,
		VehiclePlateNumber: "А123БВ77",
		Location:           "Garage/-1/12",
		Services:           []int64{1, 2},
		StartDate:          at(9, 0),
		CreatedByID:        10,
	}
}

func seedReservation(e *env, userID int64, start time.Time, minutes int) *domain.Reservation {
	end := start.Add(time.Duration(minutes) * time.Minute)
	created, _ := e.reservations.Create(context.Background(), &domain.Reservation{
		UserID:          userID,
		CompanyID:       1,
		State:           domain.StateSubmittedNotActual,
		TimeRequirement: minutes,
		StartDate:       start,
		EndDate:         &end,
	})
	return created
}

// --- тесты ---

// TestCreateReservationSuccess тестирует успешное создание брони
func TestCreateReservationSuccess(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int(domain.StateSubmittedNotActual), resp.State)
	// 60 + 20 минут услуг
	assert.Equal(t, 80, resp.TimeRequirement)
	// Конец округлен вверх до 30-минутного юнита: 09:00 + 90 минут
	assert.Equal(t, at(10, 30), resp.EndDate)
	assert.Equal(t, 2000.0, resp.TotalPrice)
}

// TestCreateReservationMpvPrice тестирует цену для минивэна при той же длительности
func TestCreateReservationMpvPrice(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.Mpv = true

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// У Wax нет отдельной цены для минивэна
	assert.Equal(t, 2500.0, resp.TotalPrice)
	assert.Equal(t, 80, resp.TimeRequirement)
}

// TestCreateReservationSlotFull тестирует исчерпание вместимости слота
func TestCreateReservationSlotFull(t *testing.T) {
	e := newEnv()

	// Слот 08:00-11:00 вмещает одну машину, она уже занята
	seedReservation(e, 99, at(8, 0), 60)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
}

// TestCreateReservationAdjacentSlotHasRoom тестирует, что занятый соседний слот
// не мешает брони в свободном
func TestCreateReservationAdjacentSlotHasRoom(t *testing.T) {
	e := newEnv()

	seedReservation(e, 99, at(8, 0), 60)

	req := validRequest()
	req.StartDate = at(12, 0)

	_, err := e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// TestCreateReservationSpanningTwoSlots тестирует бронь, пересекающую границу слотов:
// вместимость проверяется в каждом затронутом слоте
func TestCreateReservationSpanningTwoSlots(t *testing.T) {
	e := newEnv()

	// Бронь 10:00-11:30 затрагивает оба слота; первый уже полон
	seedReservation(e, 99, at(9, 0), 60)

	req := validRequest()
	req.StartDate = at(10, 0)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)
}

// TestCreateReservationTerminalDoesNotOccupy тестирует, что завершенная бронь
// не расходует вместимость
func TestCreateReservationTerminalDoesNotOccupy(t *testing.T) {
	e := newEnv()

	done := seedReservation(e, 99, at(8, 0), 60)
	done.State = domain.StateDone

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

// TestCreateReservationTooLate тестирует льготное окно бронирования "задним числом"
func TestCreateReservationTooLate(t *testing.T) {
	e := newEnv()
	e.clock.now = at(9, 30)

	req := validRequest()

	// Начало 20 минут назад, за пределами 15-минутного окна
	req.StartDate = at(9, 10)
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToReserve)

	// Начало 10 минут назад, в пределах окна
	req.StartDate = at(9, 20)
	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// TestCreateReservationUserLimit тестирует лимит одновременных броней пользователя
func TestCreateReservationUserLimit(t *testing.T) {
	e := newEnv()

	// Лимит 2, у пользователя уже две активные брони (в другие дни, это неважно)
	seedReservation(e, 10, at(11, 0).AddDate(0, 0, 7), 60)
	seedReservation(e, 10, at(12, 30).AddDate(0, 0, 14), 60)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserLimitExceeded)
}

// TestCreateReservationUserLimitIgnoresDone тестирует, что терминальные брони
// не считаются в лимит пользователя
func TestCreateReservationUserLimitIgnoresDone(t *testing.T) {
	e := newEnv()

	old := seedReservation(e, 10, at(11, 0).AddDate(0, 0, -7), 60)
	old.State = domain.StateDone
	seedReservation(e, 10, at(12, 30).AddDate(0, 0, 14), 60)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

// TestCreateReservationCompanyLimit тестирует дневную квоту компании
func TestCreateReservationCompanyLimit(t *testing.T) {
	e := newEnv()
	e.tenant.company.DailyLimit = 2

	// Квота дня исчерпана чужими бронями
	seedReservation(e, 21, at(11, 0), 60)
	seedReservation(e, 22, at(12, 30), 60)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCompanyLimitExceeded)
}

// TestCreateReservationCompanyLimitEveningSkip тестирует вечернее послабление:
// после часа отсечки квота на сегодня не проверяется
func TestCreateReservationCompanyLimitEveningSkip(t *testing.T) {
	e := newEnv()
	e.tenant.company.DailyLimit = 1
	seedReservation(e, 21, at(11, 0), 60)

	// Сейчас вечер того же дня, бронь на сегодня проходит мимо квоты
	e.clock.now = at(17, 30)
	req := validRequest()
	req.StartDate = at(17, 30)

	_, err := e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// Та же бронь, но на завтра: квота завтрашнего дня проверяется как обычно
	req.StartDate = at(17, 30).AddDate(0, 0, 1)
	seedTomorrow := seedReservation(e, 22, at(10, 0).AddDate(0, 0, 1), 60)
	_ = seedTomorrow

	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCompanyLimitExceeded)
}

// TestCreateReservationBookingDisabled тестирует компанию с нулевым лимитом:
// вечернее послабление на выключенное бронирование не распространяется
func TestCreateReservationBookingDisabled(t *testing.T) {
	e := newEnv()
	e.tenant.company.DailyLimit = 0
	e.clock.now = at(18, 0)

	req := validRequest()
	req.StartDate = at(19, 0)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCompanyLimitExceeded)
}

// TestCreateReservationIntervalBlocked тестирует отказ при пересечении с блокировкой
func TestCreateReservationIntervalBlocked(t *testing.T) {
	e := newEnv()

	end := at(10, 0)
	e.blockers.blockers = append(e.blockers.blockers, &domain.Blocker{
		ID: 7, StartDate: at(8, 0), EndDate: &end,
	})

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrIntervalBlocked)
}

// TestCreateReservationBlockerStartsAtEnd тестирует границу блокировки:
// блокировка, начинающаяся ровно в конце полуоткрытого интервала брони, ей не мешает
func TestCreateReservationBlockerStartsAtEnd(t *testing.T) {
	e := newEnv()

	// Интервал брони 09:00-10:30, блокировка стартует ровно в 10:30
	end := at(12, 0)
	e.blockers.blockers = append(e.blockers.blockers, &domain.Blocker{
		ID: 7, StartDate: at(10, 30), EndDate: &end,
	})

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

// TestCreateReservationBlockerEndsAtStart тестирует бронь, начинающуюся
// ровно в закрытом конце блокировки: этот момент еще заблокирован
func TestCreateReservationBlockerEndsAtStart(t *testing.T) {
	e := newEnv()

	end := at(9, 0)
	e.blockers.blockers = append(e.blockers.blockers, &domain.Blocker{
		ID: 8, StartDate: at(8, 0), EndDate: &end,
	})

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrIntervalBlocked)
}

// TestCreateReservationCompanyNotFound тестирует неизвестную компанию
func TestCreateReservationCompanyNotFound(t *testing.T) {
	e := newEnv()
	e.tenant.err = tenantservice.ErrCompanyNotFound

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

// TestCreateReservationUnknownService тестирует услугу, отсутствующую в каталоге
func TestCreateReservationUnknownService(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.Services = []int64{1, 42}

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// TestCreateReservationValidation тестирует валидацию входных данных
func TestCreateReservationValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "non-positive user id", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "non-positive company id", mutate: func(r *Request) { r.CompanyID = -1 }},
		{name: "empty plate number", mutate: func(r *Request) { r.VehiclePlateNumber = "" }},
		{name: "no services", mutate: func(r *Request) { r.Services = nil }},
		{name: "zero start date", mutate: func(r *Request) { r.StartDate = time.Time{} }},
		{name: "plate number too long", mutate: func(r *Request) {
			r.VehiclePlateNumber = strings.Repeat("X", domain.MaxPlateLength+1)
		}},
		{name: "comments too long", mutate: func(r *Request) {
			r.Comments = ptr.Ptr(strings.Repeat("о", domain.MaxCommentLength+1))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
