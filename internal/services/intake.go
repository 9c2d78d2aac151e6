package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"

	redisclient "github.com/samjsmart/gig-int-garden-api/internal/clients/redis"
	"github.com/samjsmart/gig-int-garden-api/internal/clients/sendgrid"
	"github.com/samjsmart/gig-int-garden-api/internal/clients/sheets"
	"github.com/samjsmart/gig-int-garden-api/internal/clients/slack"
	registrationrepo "github.com/samjsmart/gig-int-garden-api/internal/data/repos/registration"
	"github.com/samjsmart/gig-int-garden-api/internal/domain"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
	"github.com/samjsmart/gig-int-garden-api/internal/validation"
)

// Status classifies a completed submission.
type Status string

const (
	StatusCreated  Status = "created"
	StatusUpdated  Status = "updated"
	StatusNoChange Status = "no_change"
)

// Outcome is the single result of processing one submission.
type Outcome struct {
	Status Status
	Email  string
}

// Step names the pipeline stage a failure occurred in.
type Step string

const (
	StepStorage Step = "storage"
	StepMirror  Step = "mirror"
	StepNotify  Step = "notify"
	StepEmail   Step = "email"
)

// StepError wraps an adapter failure with the stage it occurred in.
// The pipeline never continues past a failed step.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ValidationError carries field-level failures. No side effects have
// occurred when it is returned.
type ValidationError struct {
	Fields validation.Fields
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("form validation failed: %d field(s)", len(e.Fields))
}

// IntakeConfig is the explicit configuration the orchestrator is
// constructed with. Nothing is read from ambient environment at
// processing time.
type IntakeConfig struct {
	AdultPrice  float64
	ChildPrice  float64
	MailSubject string
}

// IntakeService runs the submission pipeline: validate, reconcile
// against the stored registration, mirror to the sheet, announce on
// Slack, email the submitter. Each step blocks on an external
// round-trip; the first failure aborts the remainder.
type IntakeService interface {
	Process(ctx context.Context, form url.Values) (Outcome, error)
}

type intakeService struct {
	db       *gorm.DB
	log      *logger.Logger
	regs     registrationrepo.RegistrationRepo
	mirror   sheets.Client
	notifier slack.Client
	mailer   sendgrid.Client
	locker   redisclient.Locker
	cfg      IntakeConfig
	now      func() time.Time
}

// NewIntakeService wires the pipeline. locker may be nil, in which case
// submissions for the same email are not serialized across instances;
// the version-guarded update still prevents silent lost updates.
func NewIntakeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	regs registrationrepo.RegistrationRepo,
	mirror sheets.Client,
	notifier slack.Client,
	mailer sendgrid.Client,
	locker redisclient.Locker,
	cfg IntakeConfig,
) IntakeService {
	return &intakeService{
		db:       db,
		log:      baseLog.With("service", "IntakeService"),
		regs:     regs,
		mirror:   mirror,
		notifier: notifier,
		mailer:   mailer,
		locker:   locker,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *intakeService) Process(ctx context.Context, form url.Values) (Outcome, error) {
	values, fieldErrs := validation.Parse(form)
	if len(fieldErrs) > 0 {
		s.log.Warn("Submission failed validation", "fields", fieldErrs)
		return Outcome{}, &ValidationError{Fields: fieldErrs}
	}

	log := s.log.With("email", values.Email)

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, values.Email)
		if err != nil {
			if errors.Is(err, redisclient.ErrLockHeld) {
				return Outcome{}, &StepError{Step: StepStorage, Err: fmt.Errorf("another submission for this email is in flight: %w", err)}
			}
			return Outcome{}, &StepError{Step: StepStorage, Err: err}
		}
		defer release()
	}

	status, err := s.reconcile(ctx, values)
	if err != nil {
		return Outcome{}, &StepError{Step: StepStorage, Err: err}
	}
	if status == StatusNoChange {
		log.Info("Submission unchanged, skipping fan-out")
		return Outcome{Status: StatusNoChange, Email: values.Email}, nil
	}

	// Storage is durably acknowledged by now; only then touch the
	// mirror, then the channel, then the submitter's inbox.
	if err := s.mirror.UpsertRow(ctx, sheets.MirrorRow{Values: values, Paid: "No"}); err != nil {
		return Outcome{}, &StepError{Step: StepMirror, Err: err}
	}

	if err := s.notifier.Post(ctx, summaryMessage(status, values)); err != nil {
		return Outcome{}, &StepError{Step: StepNotify, Err: err}
	}

	amount := PaymentAmount(values.Adults, values.Children, s.cfg.AdultPrice, s.cfg.ChildPrice)
	html := RenderConfirmationEmail(values, amount)
	if _, err := s.mailer.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: values.Email, Name: values.Name}},
		Subject: s.cfg.MailSubject,
		HTML:    html,
	}); err != nil {
		return Outcome{}, &StepError{Step: StepEmail, Err: err}
	}

	log.Info("Submission processed", "status", string(status))
	return Outcome{Status: status, Email: values.Email}, nil
}

// reconcile decides create vs update vs no-change. A stale read loses
// the version check; one re-read absorbs a single concurrent writer,
// after which the conflict is surfaced.
func (s *intakeService) reconcile(ctx context.Context, values domain.SubmissionValues) (Status, error) {
	for attempt := 0; attempt < 2; attempt++ {
		stored, err := s.regs.Get(ctx, nil, values.Email)
		if err != nil {
			return "", err
		}

		if stored == nil {
			reg, err := domain.NewRegistration(values)
			if err != nil {
				return "", err
			}
			if err := s.regs.Create(ctx, nil, reg); err != nil {
				return "", err
			}
			return StatusCreated, nil
		}

		if stored.Values().Equal(values) {
			return StatusNoChange, nil
		}

		entry := domain.NewHistoryEntry(stored.Values(), s.now())
		err = s.regs.Update(ctx, nil, values.Email, stored.Version, values, entry)
		if err == nil {
			return StatusUpdated, nil
		}
		if !errors.Is(err, registrationrepo.ErrVersionConflict) {
			return "", err
		}
		s.log.Warn("Registration version conflict, re-reading", "attempt", attempt+1)
	}
	return "", registrationrepo.ErrVersionConflict
}

func summaryMessage(status Status, values domain.SubmissionValues) string {
	verb := "New signup"
	if status == StatusUpdated {
		verb = "Updated signup"
	}
	extras := ""
	if values.BellTent {
		extras += ", bell tent"
	}
	if values.DavidMascot {
		extras += ", mascot"
	}
	return fmt.Sprintf("%s from %s: %d adult(s), %d child(ren)%s", verb, values.Name, values.Adults, values.Children, extras)
}
