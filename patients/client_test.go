package patients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Git-Commit-Therapy/sancommitto-client/connection"
	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
	"github.com/Git-Commit-Therapy/sancommitto-client/credentials/repofake"
	"github.com/Git-Commit-Therapy/sancommitto-client/patients"
)

func newPatientConn(t *testing.T, url string) *connection.Conn {
	t.Helper()
	store := credentials.NewStore(repofake.NewFakeRepo())
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp":    float64(time.Now().Add(time.Hour).Unix()),
		"groups": []string{"patient"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.SetAccessToken(raw))

	factory := connection.NewFactory(store, func(connection.Service) string { return url })
	conn, err := factory.Get(connection.ServicePatients)
	require.NoError(t, err)
	return conn
}

func TestMedicalInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/patients/medical-info", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		json.NewEncoder(w).Encode(patients.MedicalInfo{
			PatientCode: "CF123",
			BloodType:   "0+",
			Allergies:   []string{"penicillin"},
		})
	}))
	defer srv.Close()

	client := patients.New(newPatientConn(t, srv.URL))
	info, err := client.MedicalInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "CF123", info.PatientCode)
	require.Equal(t, "0+", info.BloodType)
	require.Equal(t, []string{"penicillin"}, info.Allergies)
}

func TestUpdateContacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/patients/update-contacts", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "+390612345678", body["phoneNumber"])
		require.Equal(t, "mario@example.com", body["email"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := patients.New(newPatientConn(t, srv.URL))
	err := client.UpdateContacts(context.Background(), "+390612345678", "mario@example.com")
	require.NoError(t, err)
}

func TestAppointmentsRange(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/patients/appointments", r.URL.Path)
		var body map[string]time.Time
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.True(t, body["from"].Equal(from))
		require.True(t, body["to"].Equal(to))
		json.NewEncoder(w).Encode(map[string]any{
			"appointments": []patients.Appointment{{ID: "ap-1", PatientCode: "CF123"}},
		})
	}))
	defer srv.Close()

	client := patients.New(newPatientConn(t, srv.URL))
	appointments, err := client.Appointments(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	require.Equal(t, "ap-1", appointments[0].ID)
}
