package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/driver-service/internal/events"
	"github.com/fleetops/driver-service/pkg/logger"
)

type memRepo struct {
	rows   []Form
	nextID int64
}

func (r *memRepo) Create(_ context.Context, f *Form) error {
	r.nextID++
	f.ID = r.nextID
	r.rows = append(r.rows, *f)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Form, error) {
	for _, f := range r.rows {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, ErrFormNotFound
}

func (r *memRepo) List(_ context.Context) ([]Form, error) {
	return append([]Form(nil), r.rows...), nil
}

func (r *memRepo) Update(_ context.Context, f *Form) error {
	for i := range r.rows {
		if r.rows[i].ID == f.ID {
			r.rows[i] = *f
			return nil
		}
	}
	return ErrFormNotFound
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return ErrFormNotFound
}

func (r *memRepo) FindByDriverID(_ context.Context, driverID int64) ([]Form, error) {
	var out []Form
	for _, f := range r.rows {
		if f.DriverID == driverID {
			out = append(out, f)
		}
	}
	return out, nil
}

type recordingInvalidator struct {
	calls [][]int64
}

func (r *recordingInvalidator) Invalidate(_ context.Context, driverIDs ...int64) {
	r.calls = append(r.calls, driverIDs)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

func f64(v float64) *float64 { return &v }

func newTestService() (*Service, *memRepo, *recordingInvalidator, *recordingPublisher) {
	repo := &memRepo{}
	inv := &recordingInvalidator{}
	pub := &recordingPublisher{}
	return NewService(repo, inv, pub, logger.NewNop()), repo, inv, pub
}

func sampleForm(driverID int64) *Form {
	return &Form{DriverID: driverID, DriverName: "Jane Doe", VehicleNumber: "KCA 123A", Score: f64(88)}
}

// TestCreate_InvalidatesTrend tests cache invalidation on create
func TestCreate_InvalidatesTrend(t *testing.T) {
	svc, _, inv, pub := newTestService()

	f, err := svc.Create(context.Background(), sampleForm(5))
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.ID)
	assert.Equal(t, [][]int64{{5}}, inv.calls)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.FormCreated, pub.events[0].Type)
}

// TestCreate_Validation tests required form fields
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   Form
		wantErr error
	}{
		{"Missing driver", Form{DriverName: "A", VehicleNumber: "V"}, ErrInvalidDriverID},
		{"Missing driver name", Form{DriverID: 1, VehicleNumber: "V"}, ErrInvalidDriverName},
		{"Missing vehicle number", Form{DriverID: 1, DriverName: "A"}, ErrInvalidVehicleNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, inv, _ := newTestService()
			in := tt.input
			_, err := svc.Create(context.Background(), &in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, inv.calls)
		})
	}
}

// TestUpdate_MetricsAreMerged tests partial updates of metric fields
func TestUpdate_MetricsAreMerged(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleForm(5))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Patch{OnTimeRate: f64(0.97)})
	require.NoError(t, err)

	require.NotNil(t, updated.Score)
	assert.Equal(t, 88.0, *updated.Score)
	require.NotNil(t, updated.OnTimeRate)
	assert.Equal(t, 0.97, *updated.OnTimeRate)
	assert.Nil(t, updated.FuelEfficiency)
}

// TestUpdate_ReassignInvalidatesBothDrivers tests moving a form between drivers
func TestUpdate_ReassignInvalidatesBothDrivers(t *testing.T) {
	svc, _, inv, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleForm(5))
	require.NoError(t, err)

	newDriver := int64(6)
	_, err = svc.Update(ctx, created.ID, Patch{DriverID: &newDriver})
	require.NoError(t, err)

	assert.Equal(t, []int64{5, 6}, inv.calls[len(inv.calls)-1])
}

// TestDelete tests form deletion
func TestDelete(t *testing.T) {
	svc, repo, inv, pub := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleForm(5))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.rows)
	assert.Equal(t, []int64{5}, inv.calls[len(inv.calls)-1])
	assert.Equal(t, events.FormDeleted, pub.events[len(pub.events)-1].Type)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrFormNotFound)
}

// TestNewService_NilCollaborators tests optional collaborators
func TestNewService_NilCollaborators(t *testing.T) {
	svc := NewService(&memRepo{}, nil, nil, logger.NewNop())

	_, err := svc.Create(context.Background(), sampleForm(1))
	assert.NoError(t, err)
}
