package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret-token", 5*time.Second, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []model.Branch{}})
	})

	_, err := c.ListBranches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", got.Get("Authorization"))
	assert.Len(t, got.Get(RequestIDHeader), 36)
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestListBranchesKeepsActiveOnly(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/branches", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []model.Branch{
			{ID: 1, NameEn: "Korat", IsActive: true},
			{ID: 2, NameEn: "Closed", IsActive: false},
			{ID: 3, NameEn: "Online", IsActive: true},
		}})
	})

	branches, err := c.ListBranches(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, int64(3), branches[1].ID)
}

func TestListTeachersPassesFilterAndTotal(t *testing.T) {
	active := true
	branch := int64(2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ann", q.Get("search"))
		assert.Equal(t, "2", q.Get("branch_id"))
		assert.Equal(t, "true", q.Get("active"))
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "5", q.Get("limit"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data":  []model.Teacher{{ID: 11, FirstNameEn: "Ann"}},
			"total": 42,
		})
	})

	teachers, total, err := c.ListTeachers(context.Background(), model.TeacherFilter{
		Search: "ann", BranchID: &branch, Active: &active, Page: 3, Limit: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Ann", teachers[0].FirstNameEn)
}

func TestUnwrappedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/schedules/preview", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req model.CreateScheduleRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "Kids A1", req.ScheduleName)

		writeJSON(w, http.StatusOK, model.SchedulePreview{CanCreate: true, EstimatedEndDate: "2024-03-18"})
	})

	preview, err := c.PreviewSchedule(context.Background(), model.CreateScheduleRequest{ScheduleName: "Kids A1"})
	require.NoError(t, err)
	assert.True(t, preview.CanCreate)
	assert.Equal(t, "2024-03-18", preview.EstimatedEndDate)
}

func TestAPIErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teachers/404":
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "teacher not found"})
		case "/teachers/400":
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "first_name_en is required"})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})

	_, err := c.GetTeacher(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "teacher not found", Message(err))

	_, err = c.UpdateTeacher(context.Background(), 400, model.TeacherInput{})
	assert.True(t, IsValidation(err))
	assert.Equal(t, "first_name_en is required", Message(err))

	err = c.DeleteTeacher(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestReportsByKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-15", r.URL.Query().Get("date"))
		switch r.URL.Path {
		case "/attendance/reports/daily":
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]interface{}{
				"date": "2024-01-15",
				"teacher_attendances": []map[string]string{
					{"status": "on-time"}, {"status": "late"},
				},
			}})
		case "/attendance/reports/weekly":
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]interface{}{
				"start_date":      "2024-01-15",
				"end_date":        "2024-01-21",
				"teacher_summary": map[string]int{"total_records": 9, "on_time": 7, "late": 2},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	daily, err := c.Report(context.Background(), attendance.KindDaily, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, attendance.KindDaily, daily.Kind())
	assert.Equal(t, attendance.Stats{Total: 2, OnTime: 1, Late: 1}, attendance.CalculateStats(daily))

	weekly, err := c.Report(context.Background(), attendance.KindWeekly, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, attendance.Stats{Total: 9, OnTime: 7, Late: 2}, attendance.CalculateStats(weekly))

	_, err = c.Report(context.Background(), attendance.KindMonthly, "2024-01-15")
	assert.True(t, IsNotFound(err))
}

func TestAddGroupMember(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups/7/members", r.URL.Path)
		var req model.AddGroupMemberRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(99), req.StudentID)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.AddGroupMember(context.Background(), 7, model.AddGroupMemberRequest{StudentID: 99}))
}

func TestNullDataIsEmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":null,"total":0}`)
	})

	groups, err := c.ListGroups(context.Background(), 1, model.GroupStatusFull)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestKeyedResponses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schedules":
			writeJSON(w, http.StatusCreated, map[string]interface{}{
				"message":  "Schedule created successfully",
				"schedule": map[string]interface{}{"id": 42, "schedule_name": "Kids A1"},
			})
		case "/students":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"students": []model.Student{{ID: 7}, {ID: 8}},
				"total":    2,
			})
		}
	})

	schedule, err := c.CreateSchedule(context.Background(), model.CreateScheduleRequest{ScheduleName: "Kids A1"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), schedule.ID)
	assert.Equal(t, "Kids A1", schedule.ScheduleName)

	students, err := c.SearchStudents(context.Background(), "an", 10)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestCreateWithoutIDFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Schedule created successfully"})
	})

	_, err := c.CreateSchedule(context.Background(), model.CreateScheduleRequest{ScheduleName: "Kids A1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}
