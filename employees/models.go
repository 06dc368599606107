package employees

import (
	"time"

	"github.com/Git-Commit-Therapy/sancommitto-client/patients"
)

// Doctor is an employee with medical responsibilities.
type Doctor struct {
	FiscalCode     string `json:"fiscalCode"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Specialization string `json:"specialization"`
	Ward           string `json:"ward"`
	OfficePhone    string `json:"officePhone"`
}

// Staff is a non-medical employee.
type Staff struct {
	FiscalCode string `json:"fiscalCode"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Role       string `json:"role"`
	Ward       string `json:"ward"`
}

// Ward is a hospital ward.
type Ward struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Floor    int    `json:"floor"`
}

// SeverityCode classifies an emergency admission, most to least urgent.
type SeverityCode string

const (
	SeverityRed    SeverityCode = "red"
	SeverityYellow SeverityCode = "yellow"
	SeverityGreen  SeverityCode = "green"
	SeverityWhite  SeverityCode = "white"
)

// EmergencyAdmission is the intake record for an emergency ward patient.
type EmergencyAdmission struct {
	PatientCode   string       `json:"patientCode"`
	Severity      SeverityCode `json:"severity"`
	MedicalReport string       `json:"medicalReport"`
	AdmittedAt    time.Time    `json:"admittedAt"`
}

// AdmissionReceipt identifies an admitted emergency patient.
type AdmissionReceipt struct {
	PatientCode       string `json:"patientCode"`
	EmergencyWardCode string `json:"emergencyWardCode"`
}

// QueueEntry is one patient currently waiting or in visit in the
// emergency ward.
type QueueEntry struct {
	PatientCode string       `json:"patientCode"`
	Severity    SeverityCode `json:"severity"`
	Ambulatory  string       `json:"ambulatory"`
	InVisit     bool         `json:"inVisit"`
}

type doctorRangeRequest struct {
	DoctorCode string    `json:"doctorCode"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

type patientRangeRequest struct {
	PatientCode string    `json:"patientCode"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
}

type appointmentsResponse struct {
	Appointments []patients.Appointment `json:"appointments"`
}

type medicalExamsResponse struct {
	Exams []patients.MedicalExam `json:"exams"`
}

type medicalEventsResponse struct {
	Events []patients.MedicalEvent `json:"events"`
}

type doctorsResponse struct {
	Doctors []Doctor `json:"doctors"`
}

type staffResponse struct {
	Staff []Staff `json:"staff"`
}

type wardsResponse struct {
	Wards []Ward `json:"wards"`
}

type patientsResponse struct {
	Patients []patients.Patient `json:"patients"`
}

type queueStatusResponse struct {
	Entries []QueueEntry `json:"entries"`
}
