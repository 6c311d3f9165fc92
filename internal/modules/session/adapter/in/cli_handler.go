package in

import (
	"context"

	sessiondto "miftah/internal/modules/session/dto"
	sessionin "miftah/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, surah, startAyah int) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{SurahNumber: surah, StartAyah: startAyah})
}

func (h CLIHandler) End(ctx context.Context, endAyah int) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx, sessiondto.EndInput{EndAyah: endAyah})
}

func (h CLIHandler) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx)
}
