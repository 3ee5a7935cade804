package auth

import (
	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/server/models"
)

// RequireSuperuser passes only when identity carries the superuser flag.
func RequireSuperuser(identity *models.User) error {
	if identity == nil || !identity.IsSuperuser {
		return common.ErrorForbidden
	}
	return nil
}

// RequireSuperuserOrOwner passes when identity is a superuser or owns the
// target resource. An empty resourceOwnerID means ownership cannot be proven,
// so the check degrades to RequireSuperuser.
func RequireSuperuserOrOwner(identity *models.User, resourceOwnerID string) error {
	if identity == nil {
		return common.ErrorForbidden
	}
	if identity.IsSuperuser {
		return nil
	}
	if resourceOwnerID != "" && identity.ID == resourceOwnerID {
		return nil
	}
	return common.ErrorForbidden
}
