package patients

import "time"

// Patient is the patient-facing view of a user record.
type Patient struct {
	FiscalCode  string    `json:"fiscalCode"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
}

// MedicalInfo is the standing medical record attached to a patient.
type MedicalInfo struct {
	PatientCode   string   `json:"patientCode"`
	BloodType     string   `json:"bloodType"`
	Allergies     []string `json:"allergies"`
	Pathologies   []string `json:"pathologies"`
	Prescriptions []string `json:"prescriptions"`
	Notes         string   `json:"notes"`
}

// Appointment is a scheduled visit with a doctor.
type Appointment struct {
	ID          string    `json:"id"`
	PatientCode string    `json:"patientCode"`
	DoctorCode  string    `json:"doctorCode"`
	DateTime    time.Time `json:"dateTime"`
	Description string    `json:"description"`
	Ward        string    `json:"ward"`
}

// MedicalExam is a single exam, prescribed or performed.
type MedicalExam struct {
	ID          string    `json:"id"`
	PatientCode string    `json:"patientCode"`
	ExamType    string    `json:"examType"`
	DateTime    time.Time `json:"dateTime"`
	Outcome     string    `json:"outcome"`
}

// MedicalExamDetails extends MedicalExam with the full report.
type MedicalExamDetails struct {
	MedicalExam
	Report      string   `json:"report"`
	Attachments []string `json:"attachments"`
}

// MedicalEvent is an entry in a patient's clinical history.
type MedicalEvent struct {
	ID          string    `json:"id"`
	PatientCode string    `json:"patientCode"`
	EventType   string    `json:"eventType"`
	DateTime    time.Time `json:"dateTime"`
	Description string    `json:"description"`
}

type timeRangeRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type appointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
}

type medicalExamsResponse struct {
	Exams []MedicalExam `json:"exams"`
}

type medicalEventsResponse struct {
	Events []MedicalEvent `json:"events"`
}
