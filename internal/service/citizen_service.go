package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dinhviettung/citizen-registry/internal/auth"
	"github.com/dinhviettung/citizen-registry/internal/domain"
	"github.com/dinhviettung/citizen-registry/internal/events"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	"github.com/dinhviettung/citizen-registry/internal/repository"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

// Column limits of the add-citizen procedure parameters.
const (
	maxNationalIDLen       = 12
	maxFullNameLen         = 100
	maxGenderLen           = 10
	maxAreaNameLen         = 100
	maxAreaTypeLen         = 50
	maxHouseholdAddressLen = 255
)

// deleteConfirmedColumn is the delete procedure column confirming a removal.
const deleteConfirmedColumn = "Success"

// AddCitizenInput is the unvalidated add-citizen request.
type AddCitizenInput struct {
	NationalID        string
	FullName          string
	DateOfBirth       string
	Gender            string
	AreaName          string
	AreaType          string
	HouseholdAddress  string
	IsHead            bool
	HasCriminalRecord bool
	SetWanted         bool
	SetQuanChe        bool
}

// DeleteOutcome describes a processed delete. Deleted is false when the procedure did
// not confirm the deletion.
type DeleteOutcome struct {
	Deleted bool
	Meta    domain.Record
}

// CitizenService validates citizen requests and forwards them to the stored procedures.
type CitizenService struct {
	citizens   repository.CitizenRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCitizenService builds the service. dispatcher and logger may be nil.
func NewCitizenService(citizens repository.CitizenRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CitizenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CitizenService{citizens: citizens, dispatcher: dispatcher, logger: logger}
}

// Add registers a citizen and optionally makes them head of their household.
func (s *CitizenService) Add(ctx context.Context, in AddCitizenInput) (domain.Record, error) {
	citizen, err := in.validate()
	if err != nil {
		return nil, err
	}

	record, err := s.citizens.Add(ctx, citizen)
	if err != nil {
		s.logger.Error("add citizen failed", zap.String("national_id", citizen.NationalID), zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(i18n.KeyCitizenAddFailure, err)
	}

	s.publish(ctx, events.EventCitizenAdded, citizen.NationalID)
	return record, nil
}

// Search returns the quick-search row for a national id.
func (s *CitizenService) Search(ctx context.Context, nationalID string) (domain.Record, error) {
	record, err := s.citizens.QuickSearch(ctx, nationalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(i18n.KeyCitizenNotFound)
		}
		s.logger.Error("search citizen failed", zap.String("national_id", nationalID), zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(i18n.KeyCitizenSearchFailure, err)
	}
	return record, nil
}

// Delete removes a citizen by national id.
func (s *CitizenService) Delete(ctx context.Context, nationalID string) (*DeleteOutcome, error) {
	record, err := s.citizens.Delete(ctx, nationalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(i18n.KeyCitizenDeleteNotFound)
		}
		s.logger.Error("delete citizen failed", zap.String("national_id", nationalID), zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(i18n.KeyCitizenDeleteFailure, err)
	}

	if record == nil || !record.Truthy(deleteConfirmedColumn) {
		return &DeleteOutcome{}, nil
	}
	s.publish(ctx, events.EventCitizenDeleted, nationalID)
	return &DeleteOutcome{Deleted: true, Meta: record}, nil
}

func (s *CitizenService) publish(ctx context.Context, eventType events.EventType, nationalID string) {
	if s.dispatcher == nil {
		return
	}
	var actor events.Actor
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		actor = events.Actor{UserID: identity.UserID, RoleID: identity.RoleID, Username: identity.Username}
	}
	event := events.Event{Type: eventType, Actor: actor, Payload: events.CitizenPayload{NationalID: nationalID}}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func (in AddCitizenInput) validate() (domain.NewCitizen, error) {
	if in.NationalID == "" || in.FullName == "" || in.AreaName == "" || in.AreaType == "" || in.HouseholdAddress == "" {
		return domain.NewCitizen{}, apperrors.NewBadRequest(i18n.KeyCitizenMissingFields)
	}

	limits := []struct {
		value string
		max   int
	}{
		{in.NationalID, maxNationalIDLen},
		{in.FullName, maxFullNameLen},
		{in.Gender, maxGenderLen},
		{in.AreaName, maxAreaNameLen},
		{in.AreaType, maxAreaTypeLen},
		{in.HouseholdAddress, maxHouseholdAddressLen},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return domain.NewCitizen{}, apperrors.NewBadRequest(i18n.KeyCitizenInvalidField)
		}
	}

	citizen := domain.NewCitizen{
		NationalID:        in.NationalID,
		FullName:          in.FullName,
		AreaName:          in.AreaName,
		AreaType:          in.AreaType,
		HouseholdAddress:  in.HouseholdAddress,
		IsHead:            in.IsHead,
		HasCriminalRecord: in.HasCriminalRecord,
		SetWanted:         in.SetWanted,
		SetQuanChe:        in.SetQuanChe,
	}
	if in.Gender != "" {
		gender := in.Gender
		citizen.Gender = &gender
	}
	if in.DateOfBirth != "" {
		dob, err := parseDate(in.DateOfBirth)
		if err != nil {
			return domain.NewCitizen{}, apperrors.NewBadRequest(i18n.KeyCitizenInvalidField)
		}
		citizen.DateOfBirth = &dob
	}
	return citizen, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and keeps the date part.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
