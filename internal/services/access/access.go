// Package access реализует проверку прав доступа по роли и принадлежности ресурса.
//
// Функции пакета чистые: без ввода-вывода и побочных эффектов.
package access

import (
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// RequireAuthenticated проверяет, что личность была восстановлена из токена.
func RequireAuthenticated(actor *models.Actor) error {
	if actor == nil || ident.Canonical(actor.ID) == "" {
		return apperr.Authentication("not authenticated")
	}
	return nil
}

// Authorize решает, может ли actor работать с ресурсом, принадлежащим ownerID
// внутри компании companyID. Первое подходящее правило побеждает:
//   - SuperAdmin допускается всегда;
//   - Manager допускается в своей компании;
//   - Member при requireOwnership допускается только к своим ресурсам,
//     иначе к ресурсам своей компании.
func Authorize(actor *models.Actor, ownerID, companyID string, requireOwnership bool) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	switch actor.Role {
	case models.RoleSuperAdmin:
		return nil
	case models.RoleManager:
		if ident.Equal(actor.CompanyID, companyID) {
			return nil
		}
	case models.RoleMember:
		if requireOwnership {
			if ident.Equal(actor.ID, ownerID) {
				return nil
			}
		} else if ident.Equal(actor.CompanyID, companyID) {
			return nil
		}
	}
	return apperr.Forbidden("not authorized")
}

// IsSuperAdmin сообщает, обладает ли actor правами администратора платформы.
func IsSuperAdmin(actor *models.Actor) bool {
	return actor != nil && actor.Role == models.RoleSuperAdmin
}
