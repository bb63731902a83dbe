package routes

import (
	"context"
	"sync"

	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/internal/domain/schedule"
)

type driverStore struct {
	mu     sync.Mutex
	rows   []driver.Driver
	nextID int64
}

func (s *driverStore) Create(_ context.Context, d *driver.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	d.ID = s.nextID
	s.rows = append(s.rows, *d)
	return nil
}

func (s *driverStore) GetByID(_ context.Context, id int64) (*driver.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.rows {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, driver.ErrDriverNotFound
}

func (s *driverStore) GetByLicenseNumber(_ context.Context, license string) (*driver.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.rows {
		if d.LicenseNumber == license {
			return &d, nil
		}
	}
	return nil, driver.ErrDriverNotFound
}

func (s *driverStore) ExistsByLicenseNumber(ctx context.Context, license string) (bool, error) {
	_, err := s.GetByLicenseNumber(ctx, license)
	return err == nil, nil
}

func (s *driverStore) List(_ context.Context) ([]driver.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]driver.Driver{}, s.rows...), nil
}

func (s *driverStore) Update(_ context.Context, d *driver.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == d.ID {
			s.rows[i] = *d
			return nil
		}
	}
	return driver.ErrDriverNotFound
}

func (s *driverStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return driver.ErrDriverNotFound
}

type scheduleStore struct {
	mu     sync.Mutex
	rows   []schedule.Schedule
	nextID int64
}

func (s *scheduleStore) Create(_ context.Context, sch *schedule.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sch.ID = s.nextID
	s.rows = append(s.rows, *sch)
	return nil
}

func (s *scheduleStore) GetByID(_ context.Context, id int64) (*schedule.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sch := range s.rows {
		if sch.ID == id {
			return &sch, nil
		}
	}
	return nil, schedule.ErrScheduleNotFound
}

func (s *scheduleStore) List(_ context.Context) ([]schedule.Schedule, error) {
	return s.filter(func(schedule.Schedule) bool { return true }), nil
}

func (s *scheduleStore) FindByDriverID(_ context.Context, driverID int64) ([]schedule.Schedule, error) {
	return s.filter(func(sch schedule.Schedule) bool { return sch.DriverID == driverID }), nil
}

func (s *scheduleStore) FindByStatus(_ context.Context, status string) ([]schedule.Schedule, error) {
	return s.filter(func(sch schedule.Schedule) bool { return sch.Status == status }), nil
}

func (s *scheduleStore) filter(keep func(schedule.Schedule) bool) []schedule.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []schedule.Schedule{}
	for _, sch := range s.rows {
		if keep(sch) {
			out = append(out, sch)
		}
	}
	return out
}

func (s *scheduleStore) Update(_ context.Context, sch *schedule.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == sch.ID {
			s.rows[i] = *sch
			return nil
		}
	}
	return schedule.ErrScheduleNotFound
}

func (s *scheduleStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return schedule.ErrScheduleNotFound
}

type formStore struct {
	mu     sync.Mutex
	rows   []form.Form
	nextID int64
}

func (s *formStore) Create(_ context.Context, f *form.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	s.rows = append(s.rows, *f)
	return nil
}

func (s *formStore) GetByID(_ context.Context, id int64) (*form.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.rows {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, form.ErrFormNotFound
}

func (s *formStore) List(_ context.Context) ([]form.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]form.Form{}, s.rows...), nil
}

func (s *formStore) FindByDriverID(_ context.Context, driverID int64) ([]form.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []form.Form{}
	for _, f := range s.rows {
		if f.DriverID == driverID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *formStore) Update(_ context.Context, f *form.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == f.ID {
			s.rows[i] = *f
			return nil
		}
	}
	return form.ErrFormNotFound
}

func (s *formStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return form.ErrFormNotFound
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
