// Package employees is the typed data-fetch layer for the employee and
// emergency ward services. The three services are deployed together but
// exposed as separately named connections, so a client holds one
// credentialed connection per service.
package employees

import (
	"context"
	"time"

	"github.com/Git-Commit-Therapy/sancommitto-client/connection"
	"github.com/Git-Commit-Therapy/sancommitto-client/patients"
)

// Client calls the employee-side services over credentialed connections.
type Client struct {
	employee *connection.Conn
	ward     *connection.Conn
	panel    *connection.Conn
}

// New builds a Client from the connection factory. It fails with
// connection.ErrUnauthenticated when no valid access token exists.
func New(factory *connection.Factory) (*Client, error) {
	employee, err := factory.Get(connection.ServiceEmployees)
	if err != nil {
		return nil, err
	}
	ward, err := factory.Get(connection.ServiceEmergencyWard)
	if err != nil {
		return nil, err
	}
	panel, err := factory.Get(connection.ServiceEmergencyWardPanel)
	if err != nil {
		return nil, err
	}
	return &Client{employee: employee, ward: ward, panel: panel}, nil
}

// Doctor returns the doctor record bound to the current access token.
func (c *Client) Doctor(ctx context.Context) (*Doctor, error) {
	var out Doctor
	if err := c.employee.Post(ctx, "/v1/employees/me", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllDoctors lists every doctor.
func (c *Client) AllDoctors(ctx context.Context) ([]Doctor, error) {
	var out doctorsResponse
	if err := c.employee.Post(ctx, "/v1/employees/doctors", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Doctors, nil
}

// AllStaff lists every staff member.
func (c *Client) AllStaff(ctx context.Context) ([]Staff, error) {
	var out staffResponse
	if err := c.employee.Post(ctx, "/v1/employees/staff", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Staff, nil
}

// AllPatients lists every patient.
func (c *Client) AllPatients(ctx context.Context) ([]patients.Patient, error) {
	var out patientsResponse
	if err := c.employee.Post(ctx, "/v1/employees/patients", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Patients, nil
}

// AllWards lists every ward.
func (c *Client) AllWards(ctx context.Context) ([]Ward, error) {
	var out wardsResponse
	if err := c.employee.Post(ctx, "/v1/employees/wards", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Wards, nil
}

// AppointmentsFromDoctor lists a doctor's appointments between from and
// to, inclusive.
func (c *Client) AppointmentsFromDoctor(ctx context.Context, doctorCode string, from, to time.Time) ([]patients.Appointment, error) {
	var out appointmentsResponse
	in := doctorRangeRequest{DoctorCode: doctorCode, From: from, To: to}
	if err := c.employee.Post(ctx, "/v1/employees/appointments/by-doctor", in, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// AllMedicalExams lists a patient's exams between from and to, inclusive.
func (c *Client) AllMedicalExams(ctx context.Context, patientCode string, from, to time.Time) ([]patients.MedicalExam, error) {
	var out medicalExamsResponse
	in := patientRangeRequest{PatientCode: patientCode, From: from, To: to}
	if err := c.employee.Post(ctx, "/v1/employees/medical-exams", in, &out); err != nil {
		return nil, err
	}
	return out.Exams, nil
}

// AllMedicalEvents lists a patient's clinical history entries between
// from and to, inclusive.
func (c *Client) AllMedicalEvents(ctx context.Context, patientCode string, from, to time.Time) ([]patients.MedicalEvent, error) {
	var out medicalEventsResponse
	in := patientRangeRequest{PatientCode: patientCode, From: from, To: to}
	if err := c.employee.Post(ctx, "/v1/employees/medical-events", in, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// CreateDoctor registers a new doctor.
func (c *Client) CreateDoctor(ctx context.Context, doctor Doctor) error {
	return c.employee.Post(ctx, "/v1/employees/doctors/create", doctor, nil)
}

// ModifyDoctor updates an existing doctor.
func (c *Client) ModifyDoctor(ctx context.Context, doctor Doctor) error {
	return c.employee.Post(ctx, "/v1/employees/doctors/modify", doctor, nil)
}

// CreateStaff registers a new staff member.
func (c *Client) CreateStaff(ctx context.Context, staff Staff) error {
	return c.employee.Post(ctx, "/v1/employees/staff/create", staff, nil)
}

// ModifyStaff updates an existing staff member.
func (c *Client) ModifyStaff(ctx context.Context, staff Staff) error {
	return c.employee.Post(ctx, "/v1/employees/staff/modify", staff, nil)
}

// CreatePatient registers a new patient record.
func (c *Client) CreatePatient(ctx context.Context, patient patients.Patient) error {
	return c.employee.Post(ctx, "/v1/employees/patients/create", patient, nil)
}

// ModifyPatient updates an existing patient record.
func (c *Client) ModifyPatient(ctx context.Context, patient patients.Patient) error {
	return c.employee.Post(ctx, "/v1/employees/patients/modify", patient, nil)
}

// CreateAppointment schedules an appointment.
func (c *Client) CreateAppointment(ctx context.Context, appointment patients.Appointment) error {
	return c.employee.Post(ctx, "/v1/employees/appointments/create", appointment, nil)
}

// ModifyAppointment updates an appointment.
func (c *Client) ModifyAppointment(ctx context.Context, appointment patients.Appointment) error {
	return c.employee.Post(ctx, "/v1/employees/appointments/modify", appointment, nil)
}

// CreateMedicalInfo creates a patient's standing medical record.
func (c *Client) CreateMedicalInfo(ctx context.Context, info patients.MedicalInfo) error {
	return c.employee.Post(ctx, "/v1/employees/medical-info/create", info, nil)
}

// ModifyMedicalInfo updates a patient's standing medical record.
func (c *Client) ModifyMedicalInfo(ctx context.Context, info patients.MedicalInfo) error {
	return c.employee.Post(ctx, "/v1/employees/medical-info/modify", info, nil)
}

// CreateMedicalExam records a new exam.
func (c *Client) CreateMedicalExam(ctx context.Context, exam patients.MedicalExam) error {
	return c.employee.Post(ctx, "/v1/employees/medical-exams/create", exam, nil)
}

// ModifyMedicalExam updates an exam.
func (c *Client) ModifyMedicalExam(ctx context.Context, exam patients.MedicalExam) error {
	return c.employee.Post(ctx, "/v1/employees/medical-exams/modify", exam, nil)
}

// CreateMedicalEvent records a new clinical history entry.
func (c *Client) CreateMedicalEvent(ctx context.Context, event patients.MedicalEvent) error {
	return c.employee.Post(ctx, "/v1/employees/medical-events/create", event, nil)
}

// ModifyMedicalEvent updates a clinical history entry.
func (c *Client) ModifyMedicalEvent(ctx context.Context, event patients.MedicalEvent) error {
	return c.employee.Post(ctx, "/v1/employees/medical-events/modify", event, nil)
}

// AdmitEmergencyPatient adds a patient to the emergency ward queue.
func (c *Client) AdmitEmergencyPatient(ctx context.Context, admission EmergencyAdmission) (*AdmissionReceipt, error) {
	var out AdmissionReceipt
	if err := c.ward.Post(ctx, "/v1/emergency-ward/patients/add", admission, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransferEmergencyPatient moves an emergency patient to a ward.
func (c *Client) TransferEmergencyPatient(ctx context.Context, patientCode, wardCode string) error {
	in := struct {
		PatientCode string `json:"patientCode"`
		WardCode    string `json:"wardCode"`
	}{PatientCode: patientCode, WardCode: wardCode}
	return c.ward.Post(ctx, "/v1/emergency-ward/patients/transfer", in, nil)
}

// RemoveEmergencyPatient discharges an emergency patient.
func (c *Client) RemoveEmergencyPatient(ctx context.Context, patientCode, dischargeLetter string) error {
	in := struct {
		PatientCode     string `json:"patientCode"`
		DischargeLetter string `json:"dischargeLetter"`
	}{PatientCode: patientCode, DischargeLetter: dischargeLetter}
	return c.ward.Post(ctx, "/v1/emergency-ward/patients/remove", in, nil)
}

// CallEmergencyPatient calls a patient in for their visit.
func (c *Client) CallEmergencyPatient(ctx context.Context, patientCode, ambulatory string) error {
	in := struct {
		PatientCode string `json:"patientCode"`
		Ambulatory  string `json:"ambulatory"`
	}{PatientCode: patientCode, Ambulatory: ambulatory}
	return c.ward.Post(ctx, "/v1/emergency-ward/patients/call", in, nil)
}

// EmergencyQueue returns the emergency ward's current visiting status,
// as shown on the waiting room panels.
func (c *Client) EmergencyQueue(ctx context.Context) ([]QueueEntry, error) {
	var out queueStatusResponse
	if err := c.panel.Get(ctx, "/v1/emergency-ward/queue", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}
