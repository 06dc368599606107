// Package patients is the typed data-fetch layer for the patient
// service. Every call rides a credentialed connection, so the bearer
// token is attached automatically.
package patients

import (
	"context"
	"time"

	"github.com/Git-Commit-Therapy/sancommitto-client/connection"
)

// Client calls the patient service over a credentialed connection.
type Client struct {
	conn *connection.Conn
}

// New wraps a connection obtained from the connection factory for
// connection.ServicePatients.
func New(conn *connection.Conn) *Client {
	return &Client{conn: conn}
}

// Get returns the patient record bound to the current access token.
func (c *Client) Get(ctx context.Context) (*Patient, error) {
	var out Patient
	if err := c.conn.Post(ctx, "/v1/patients/me", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MedicalInfo returns the patient's standing medical record.
func (c *Client) MedicalInfo(ctx context.Context) (*MedicalInfo, error) {
	var out MedicalInfo
	if err := c.conn.Post(ctx, "/v1/patients/medical-info", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Appointments lists the patient's appointments in [from, to].
func (c *Client) Appointments(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	var out appointmentsResponse
	if err := c.conn.Post(ctx, "/v1/patients/appointments", timeRangeRequest{From: from, To: to}, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// MedicalExams lists the patient's exams in [from, to].
func (c *Client) MedicalExams(ctx context.Context, from, to time.Time) ([]MedicalExam, error) {
	var out medicalExamsResponse
	if err := c.conn.Post(ctx, "/v1/patients/medical-exams", timeRangeRequest{From: from, To: to}, &out); err != nil {
		return nil, err
	}
	return out.Exams, nil
}

// MedicalEvents lists the patient's clinical history in [from, to].
func (c *Client) MedicalEvents(ctx context.Context, from, to time.Time) ([]MedicalEvent, error) {
	var out medicalEventsResponse
	if err := c.conn.Post(ctx, "/v1/patients/medical-events", timeRangeRequest{From: from, To: to}, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// UpdateContacts replaces the patient's phone number and email address.
func (c *Client) UpdateContacts(ctx context.Context, phoneNumber, email string) error {
	in := struct {
		PhoneNumber string `json:"phoneNumber"`
		Email       string `json:"email"`
	}{PhoneNumber: phoneNumber, Email: email}
	return c.conn.Post(ctx, "/v1/patients/update-contacts", in, nil)
}

// MedicalExamDetails returns the full report for one exam.
func (c *Client) MedicalExamDetails(ctx context.Context, examID string) (*MedicalExamDetails, error) {
	var out MedicalExamDetails
	in := struct {
		ExamID string `json:"examId"`
	}{ExamID: examID}
	if err := c.conn.Post(ctx, "/v1/patients/medical-exam-details", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
