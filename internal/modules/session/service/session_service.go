package service

import (
	"fmt"

	"miftah/internal/modules/session/domain"
	"miftah/internal/platform/clock"
	apperrors "miftah/internal/platform/errors"
	"miftah/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

func (s *SessionService) Start(surah, startAyah int) (domain.ActiveSession, error) {
	if surah < 1 || surah > domain.MaxSurah {
		return domain.ActiveSession{}, fmt.Errorf("surah %d out of range 1-%d: %w", surah, domain.MaxSurah, apperrors.ErrInvalidInput)
	}
	if startAyah < 1 {
		return domain.ActiveSession{}, fmt.Errorf("start ayah must be positive: %w", apperrors.ErrInvalidInput)
	}
	return domain.ActiveSession{
		SessionID:   s.idGen.New(),
		SurahNumber: surah,
		StartAyah:   startAyah,
		StartedAt:   s.clock.Now(),
	}, nil
}

func (s *SessionService) End(active domain.ActiveSession, endAyah int) (domain.Session, error) {
	if endAyah < 1 {
		return domain.Session{}, fmt.Errorf("end ayah must be positive: %w", apperrors.ErrInvalidInput)
	}
	endedAt := s.clock.Now()
	return domain.Session{
		ID:          active.SessionID,
		SurahNumber: active.SurahNumber,
		StartAyah:   active.StartAyah,
		EndAyah:     endAyah,
		StartedAt:   active.StartedAt,
		EndedAt:     endedAt,
		DurationMin: domain.DurationMinutes(active.StartedAt, endedAt),
		VersesRead:  domain.VersesRead(active.StartAyah, endAyah),
	}, nil
}
