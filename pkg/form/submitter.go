package form

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Submission is the validated payload handed to a Submitter.
type Submission struct {
	ID         string
	Values     map[string]string
	ReceivedAt time.Time
}

// Registration returns the submission as a typed registration record.
func (s Submission) Registration() validation.Registration {
	return validation.RegistrationFromMap(s.Values)
}

// Submitter receives accepted submissions. A returned error aborts the
// hand-off and the form keeps its values.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, submission Submission) error

// Submit calls the underlying function.
func (fn SubmitterFunc) Submit(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// LogSubmitter logs every accepted submission. The phone number is added in
// E.164 form when it can be parsed.
func LogSubmitter(logger *zap.Logger) Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SubmitterFunc(func(_ context.Context, submission Submission) error {
		record := submission.Registration()
		fields := []zap.Field{
			zap.String("submission_id", submission.ID),
			zap.Time("received_at", submission.ReceivedAt),
			zap.String("first_name", record.FirstName),
			zap.String("last_name", record.LastName),
			zap.String("email", record.Email),
			zap.String("cpf", record.CPF),
			zap.String("cep", record.CEP),
			zap.String("street", record.Street),
			zap.String("number", record.Number),
			zap.String("neighborhood", record.Neighborhood),
			zap.String("city", record.City),
			zap.String("state", record.State),
			zap.String("phone", record.Phone),
		}
		if e164, err := validation.NormalizePhone(record.Phone); err == nil {
			fields = append(fields, zap.String("phone_e164", e164))
		}
		logger.Info("registration submitted", fields...)
		return nil
	})
}
