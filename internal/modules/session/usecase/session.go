package usecase

import (
	"context"
	"errors"

	progressdto "miftah/internal/modules/progress/dto"
	progressin "miftah/internal/modules/progress/port/in"
	sessiondto "miftah/internal/modules/session/dto"
	sessionin "miftah/internal/modules/session/port/in"
	sessionout "miftah/internal/modules/session/port/out"
	"miftah/internal/modules/session/service"
	apperrors "miftah/internal/platform/errors"
)

type Interactor struct {
	svc         *service.SessionService
	progress    progressin.Usecase
	activeStore sessionout.ActiveSessionStore
}

func NewInteractor(svc *service.SessionService, progress progressin.Usecase, activeStore sessionout.ActiveSessionStore) sessionin.Usecase {
	return &Interactor{svc: svc, progress: progress, activeStore: activeStore}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	_, err := i.activeStore.LoadActive(ctx)
	if err == nil {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	}
	if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.StartOutput{}, err
	}

	active, err := i.svc.Start(input.SurahNumber, input.StartAyah)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if err := i.progress.UpdateProgress(ctx, progressdto.UpdateProgressInput{SurahNumber: active.SurahNumber, AyahNumber: active.StartAyah}); err != nil {
		return sessiondto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{
		SessionID:   active.SessionID,
		SurahNumber: active.SurahNumber,
		StartAyah:   active.StartAyah,
		StartedAt:   active.StartedAt,
	}, nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	session, err := i.svc.End(active, input.EndAyah)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}

	if err := i.progress.FinishSession(ctx, progressdto.AddSessionInput{
		SurahNumber: session.SurahNumber,
		StartAyah:   session.StartAyah,
		EndAyah:     session.EndAyah,
		Duration:    session.DurationMin,
		VersesRead:  session.VersesRead,
	}); err != nil {
		return sessiondto.EndOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.EndOutput{}, err
	}

	out := sessiondto.EndOutput{
		SessionID:   session.ID,
		SurahNumber: session.SurahNumber,
		StartAyah:   session.StartAyah,
		EndAyah:     session.EndAyah,
		DurationMin: session.DurationMin,
		VersesRead:  session.VersesRead,
	}
	if today, err := i.progress.GetTodayStats(ctx); err == nil {
		out.GoalProgress = today.GoalProgress
	}
	return out, nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		SessionID:   active.SessionID,
		SurahNumber: active.SurahNumber,
		StartAyah:   active.StartAyah,
		StartedAt:   active.StartedAt,
	}, nil
}
