package update_reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// --- фейки зависимостей ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) add(r *domain.Reservation) *domain.Reservation {
	f.nextID++
	stored := *r
	stored.ID = f.nextID
	f.reservations = append(f.reservations, &stored)
	return &stored
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			clone := *r
			return &clone, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) Update(_ context.Context, updated *domain.Reservation) error {
	for i, r := range f.reservations {
		if r.ID == updated.ID {
			clone := *updated
			f.reservations[i] = &clone
			return nil
		}
	}
	return reservationRepo.ErrReservationNotFound
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
}

func (f *fakeTenantClient) GetCompany(_ context.Context, _ int64) (*domain.Company, error) {
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
			{ID: 1, Name: "Wash", TimeInMinutes: 60, Price: 1500},
			{ID: 2, Name: "Wax", TimeInMinutes: 20, Price: 500},
		}),
	}
}

type env struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	blockers     *fakeBlockerRepo
	clock        *fakeTime
	existing     *domain.Reservation
}

func newEnv() *env {
	reservations := &fakeReservationRepo{}
	blockers := &fakeBlockerRepo{}
	tenant := &fakeTenantClient{company: &domain.Company{ID: 1, Name: "Acme", DailyLimit: 5}}
	clock := &fakeTime{now: at(7, 0)}

	end := at(10, 0)
	existing := reservations.add(&domain.Reservation{
		UserID:             10,
		CompanyID:          1,
		VehiclePlateNumber: "А123БВ77",
		State:              domain.StateSubmittedNotActual,
		Services:           []int64{1},
		TimeRequirement:    60,
		StartDate:          at(9, 0),
		EndDate:            &end,
	})

	uc := NewUseCase(reservations, blockers, tenant, &fakeConfig{cfg: testEngineConfig()}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = clock

	return &env{uc: uc, reservations: reservations, blockers: blockers, clock: clock, existing: existing}
}

func validRequest(e *env) *Request {
	return &Request{
		ReservationID: e.existing.ID,
		ActorID:       10,
		Services:      []int64{1},
		StartDate:     at(9, 30),
		Location:      "Garage/-1/12",
	}
}

// --- тесты ---

// TestUpdateReservationSuccess тестирует перенос брони владельцем
func TestUpdateReservationSuccess(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest(e))
	require.NoError(t, err)

	assert.Equal(t, at(9, 30), resp.StartDate)
	assert.Equal(t, at(10, 30), resp.EndDate)
	assert.Equal(t, "Garage/-1/12", resp.Location)

	stored, err := e.reservations.GetByID(context.Background(), e.existing.ID)
	require.NoError(t, err)
	assert.Equal(t, at(9, 30), stored.StartDate)
}

// TestUpdateReservationExcludesOwnFootprint тестирует ключевое свойство редактирования:
// при переносе внутри полного слота бронь не упирается в собственный след
func TestUpdateReservationExcludesOwnFootprint(t *testing.T) {
	e := newEnv()

	// Слот 08:00-11:00 вмещает одну машину, её и переносим на 30 минут
	req := validRequest(e)
	req.StartDate = at(9, 30)

	_, err := e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// TestUpdateReservationSlotFullByOthers тестирует отказ, когда слот занят чужой бронью
func TestUpdateReservationSlotFullByOthers(t *testing.T) {
	e := newEnv()

	// Переносим бронь в слот 11:00-18:00 (вместимость 2), где уже две чужие машины
	end1 := at(13, 0)
	e.reservations.add(&domain.Reservation{
		UserID: 21, CompanyID: 1, State: domain.StateSubmittedNotActual,
		TimeRequirement: 60, StartDate: at(12, 0), EndDate: &end1,
	})
	end2 := at(14, 0)
	e.reservations.add(&domain.Reservation{
		UserID: 22, CompanyID: 1, State: domain.StateSubmittedNotActual,
		TimeRequirement: 60, StartDate: at(13, 0), EndDate: &end2,
	})

	req := validRequest(e)
	req.StartDate = at(12, 30)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)
}

// TestUpdateReservationAccessDenied тестирует запрет редактирования чужой брони
func TestUpdateReservationAccessDenied(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.ActorID = 99

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// TestUpdateReservationNotEditableAfterKeyDrop тестирует, что после сдачи ключей
// владелец бронь больше не редактирует, а сотрудник может
func TestUpdateReservationNotEditableAfterKeyDrop(t *testing.T) {
	e := newEnv()
	e.existing.State = domain.StateCarKeyLeftAndLocationConfirmed
	_ = e.reservations.Update(context.Background(), e.existing)

	req := validRequest(e)
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotEditable)

	req.ActorID = 500
	req.Staff = true
	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// TestUpdateReservationTerminalNotEditable тестирует, что терминальную бронь
// не редактирует даже сотрудник
func TestUpdateReservationTerminalNotEditable(t *testing.T) {
	e := newEnv()
	e.existing.State = domain.StateDone
	_ = e.reservations.Update(context.Background(), e.existing)

	req := validRequest(e)
	req.ActorID = 500
	req.Staff = true

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotEditable)
}

// TestUpdateReservationNotFound тестирует редактирование несуществующей брони
func TestUpdateReservationNotFound(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.ReservationID = 777

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

// TestUpdateReservationIntoBlockedInterval тестирует перенос в заблокированный интервал
func TestUpdateReservationIntoBlockedInterval(t *testing.T) {
	e := newEnv()

	end := at(15, 0)
	e.blockers.blockers = append(e.blockers.blockers, &domain.Blocker{
		ID: 3, StartDate: at(13, 0), EndDate: &end,
	})

	req := validRequest(e)
	req.StartDate = at(14, 0)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrIntervalBlocked)
}

// TestUpdateReservationBlockerStartsAtEnd тестирует перенос вплотную к блокировке:
// блокировка, начинающаяся ровно в конце нового интервала, переносу не мешает
func TestUpdateReservationBlockerStartsAtEnd(t *testing.T) {
	e := newEnv()

	// Новый интервал 09:30-10:30, блокировка стартует ровно в 10:30
	end := at(12, 0)
	e.blockers.blockers = append(e.blockers.blockers, &domain.Blocker{
		ID: 4, StartDate: at(10, 30), EndDate: &end,
	})

	_, err := e.uc.Execute(context.Background(), validRequest(e))
	assert.NoError(t, err)
}

// TestUpdateReservationCommentsTooLong тестирует лимит длины комментария
func TestUpdateReservationCommentsTooLong(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.Comments = ptr.Ptr(strings.Repeat("о", domain.MaxCommentLength+1))

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestUpdateReservationServicesRecalculated тестирует пересчет длительности
// при смене набора услуг
func TestUpdateReservationServicesRecalculated(t *testing.T) {
	e := newEnv()

	req := validRequest(e)
	req.Services = []int64{1, 2}

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 80, resp.TimeRequirement)
	// 80 минут округляются вверх до 90
	assert.Equal(t, req.StartDate.Add(90*time.Minute), resp.EndDate)
	assert.Equal(t, 2000.0, resp.TotalPrice)
}
