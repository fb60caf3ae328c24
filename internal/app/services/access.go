package services

import (
	"context"

	"github.com/google/uuid"
	appauth "github.com/yudha/sipkl/internal/app/auth"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/dberrors"
)

// resolvePKLForRead loads a PKL and verifies the caller is a party to it:
// the owning student, the koordinator, the kaprodi of its program, or an
// admin. A caller who is not a party gets the same not-found error as a
// missing record, so existence never leaks.
func resolvePKLForRead(ctx context.Context, pkls PKLStore, prodi ProgramStudiStore, ident appauth.Identity, id uuid.UUID) (*models.PKL, error) {
	pkl, err := pkls.GetByID(ctx, id)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(messages.PKLNotFound)
		}
		return nil, apperrors.NewInternal(messages.PKLNotFound, err)
	}

	switch {
	case ident.IsAdmin():
		return pkl, nil
	case ident.IsMahasiswa():
		if pkl.MahasiswaID == *ident.MahasiswaID {
			return pkl, nil
		}
	case ident.IsDosen():
		if pkl.KoordinatorID == *ident.DosenID {
			return pkl, nil
		}
		ps, err := prodi.GetByID(ctx, pkl.ProdiID)
		if err == nil && ps.KaprodiID == *ident.DosenID {
			return pkl, nil
		}
	}
	return nil, apperrors.NewNotFound(messages.PKLNotFound)
}

// resolvePKLForWrite loads a PKL for an owning-student mutation. Only the
// student the record belongs to qualifies; everyone else, admins included,
// gets not-found.
func resolvePKLForWrite(ctx context.Context, pkls PKLStore, ident appauth.Identity, id uuid.UUID) (*models.PKL, error) {
	pkl, err := pkls.GetByID(ctx, id)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(messages.PKLNotFound)
		}
		return nil, apperrors.NewInternal(messages.PKLNotFound, err)
	}
	if pkl.MahasiswaID != *ident.MahasiswaID {
		return nil, apperrors.NewNotFound(messages.PKLNotFound)
	}
	return pkl, nil
}
