package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/desk-reservation/internal/model"
	"github.com/campuslabs/desk-reservation/internal/repository"
	"github.com/campuslabs/desk-reservation/internal/service"
)

type mockDeskServicer struct {
	listAll       func(ctx context.Context) ([]model.Desk, error)
	listAvailable func(ctx context.Context, typeFilter string) ([]model.Desk, error)
	getDesk       func(ctx context.Context, id uint64) (*model.Desk, error)
	createDesk    func(ctx context.Context, entry model.DeskEntry) (*model.Desk, error)
	updateDesk    func(ctx context.Context, id uint64, entry model.DeskEntry) (*model.Desk, error)
	removeDesk    func(ctx context.Context, id uint64) (*model.Desk, error)
	toggle        func(ctx context.Context, id uint64, available bool) (*model.Desk, int64, error)
}

func (m *mockDeskServicer) ListAll(ctx context.Context) ([]model.Desk, error) {
	return m.listAll(ctx)
}
func (m *mockDeskServicer) ListAvailable(ctx context.Context, typeFilter string) ([]model.Desk, error) {
	return m.listAvailable(ctx, typeFilter)
}
func (m *mockDeskServicer) GetDesk(ctx context.Context, id uint64) (*model.Desk, error) {
	return m.getDesk(ctx, id)
}
func (m *mockDeskServicer) CreateDesk(ctx context.Context, entry model.DeskEntry) (*model.Desk, error) {
	return m.createDesk(ctx, entry)
}
func (m *mockDeskServicer) UpdateDesk(ctx context.Context, id uint64, entry model.DeskEntry) (*model.Desk, error) {
	return m.updateDesk(ctx, id, entry)
}
func (m *mockDeskServicer) RemoveDeskCascade(ctx context.Context, id uint64) (*model.Desk, error) {
	return m.removeDesk(ctx, id)
}
func (m *mockDeskServicer) ToggleAvailabilityCascade(ctx context.Context, id uint64, available bool) (*model.Desk, int64, error) {
	return m.toggle(ctx, id, available)
}

var _ DeskServicer = (*mockDeskServicer)(nil)

// newContext builds an echo context for a handler-level test. The
// returned recorder captures the response.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestDeskListAvailablePassesFilter(t *testing.T) {
	var gotFilter string
	mock := &mockDeskServicer{
		listAvailable: func(_ context.Context, typeFilter string) ([]model.Desk, error) {
			gotFilter = typeFilter
			return []model.Desk{{ID: 1, Tag: "A1", DeskType: "Standing Desk", Available: true}}, nil
		},
	}
	h := NewDeskHandler(mock)

	c, rec := newContext(http.MethodGet, "/desk/available?desk_type=Standing+Desk", "")
	require.NoError(t, h.ListAvailable(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Standing Desk", gotFilter)

	var desks []model.Desk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desks))
	require.Len(t, desks, 1)
	assert.Equal(t, "A1", desks[0].Tag)
}

func TestDeskGet(t *testing.T) {
	mock := &mockDeskServicer{
		getDesk: func(_ context.Context, id uint64) (*model.Desk, error) {
			if id != 5 {
				return nil, repository.ErrDeskNotFound
			}
			return &model.Desk{ID: 5, Tag: "C3", DeskType: "Computer Desk", Available: true}, nil
		},
	}
	h := NewDeskHandler(mock)

	c, rec := newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("6")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeskCreate(t *testing.T) {
	mock := &mockDeskServicer{
		createDesk: func(_ context.Context, entry model.DeskEntry) (*model.Desk, error) {
			return &model.Desk{ID: 9, Tag: "D4", DeskType: entry.DeskType, Available: entry.Available}, nil
		},
	}
	h := NewDeskHandler(mock)

	c, rec := newContext(http.MethodPost, "/desk/admin/create_desk",
		`{"tag":"d4","desk_type":"Open Study Desk","available":true}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var desk model.Desk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desk))
	assert.Equal(t, uint64(9), desk.ID)
}

func TestDeskCreateErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate tag", repository.ErrDuplicateTag, http.StatusConflict},
		{"blank tag", service.ErrInvalidTag, http.StatusUnprocessableEntity},
		{"bad type", service.ErrInvalidDeskType, http.StatusUnprocessableEntity},
		{"bad resource", service.ErrInvalidResource, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockDeskServicer{
				createDesk: func(context.Context, model.DeskEntry) (*model.Desk, error) {
					return nil, tc.err
				},
			}
			h := NewDeskHandler(mock)
			c, rec := newContext(http.MethodPost, "/desk/admin/create_desk",
				`{"tag":"A1","desk_type":"Computer Desk"}`)
			require.NoError(t, h.Create(c))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestDeskRemove(t *testing.T) {
	mock := &mockDeskServicer{
		removeDesk: func(_ context.Context, id uint64) (*model.Desk, error) {
			return &model.Desk{ID: id, Tag: "B2", DeskType: "Standing Desk"}, nil
		},
	}
	h := NewDeskHandler(mock)

	c, rec := newContext(http.MethodPost, "/desk/admin/remove_desk", `{"id":3}`)
	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var desk model.Desk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desk))
	assert.Equal(t, "B2", desk.Tag)
}

func TestDeskToggleAvailabilityReportsCascade(t *testing.T) {
	var gotAvailable bool
	mock := &mockDeskServicer{
		toggle: func(_ context.Context, id uint64, available bool) (*model.Desk, int64, error) {
			gotAvailable = available
			return &model.Desk{ID: id, Tag: "A1", Available: available}, 4, nil
		},
	}
	h := NewDeskHandler(mock)

	c, rec := newContext(http.MethodPut, "/desk/admin/toggle_availability",
		`{"id":1,"available":false}`)
	require.NoError(t, h.ToggleAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotAvailable)
	assert.Equal(t, "4", rec.Header().Get("X-Cascaded-Reservations"))
}

func TestDeskUpdateUnknownDesk(t *testing.T) {
	mock := &mockDeskServicer{
		updateDesk: func(context.Context, uint64, model.DeskEntry) (*model.Desk, error) {
			return nil, repository.ErrDeskNotFound
		},
	}
	h := NewDeskHandler(mock)

	c, rec := newContext(http.MethodPut, "/", `{"desk_type":"Computer Desk"}`)
	c.SetParamNames("id")
	c.SetParamValues("12")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
