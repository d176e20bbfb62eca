// Package authz centralizes the authorization policy: every protected action
// maps to exactly one rule, so the admin/owner relationship is defined once
// and consumed by every handler.
package authz

import (
	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

// Action names a protected operation.
type Action string

const (
	ActionListUsers        Action = "users:list"
	ActionReadUser         Action = "users:read"
	ActionListClients      Action = "clients:list"
	ActionReadClient       Action = "clients:read"
	ActionUpdateClient     Action = "clients:update"
	ActionDeleteClient     Action = "clients:delete"
	ActionCreateProduct    Action = "products:create"
	ActionUpdateProduct    Action = "products:update"
	ActionDeleteProduct    Action = "products:delete"
	ActionCreateOrder      Action = "orders:create"
	ActionReadOrder        Action = "orders:read"
	ActionUpdateOrder      Action = "orders:update"
	ActionDeleteOrder      Action = "orders:delete"
	ActionSendNotification Action = "notifications:send"
)

type rule int

const (
	// adminOnly requires is_admin on the caller.
	adminOnly rule = iota
	// adminOrOwner admits admins and the caller whose client owns the
	// resource.
	adminOrOwner
	// selfService requires the caller to be linked to a client record.
	selfService
)

var policy = map[Action]rule{
	ActionListUsers:        adminOnly,
	ActionReadUser:         adminOnly,
	ActionListClients:      adminOnly,
	ActionReadClient:       adminOrOwner,
	ActionUpdateClient:     adminOrOwner,
	ActionDeleteClient:     adminOnly,
	ActionCreateProduct:    adminOnly,
	ActionUpdateProduct:    adminOnly,
	ActionDeleteProduct:    adminOnly,
	ActionCreateOrder:      selfService,
	ActionReadOrder:        adminOrOwner,
	ActionUpdateOrder:      adminOrOwner,
	ActionDeleteOrder:      adminOrOwner,
	ActionSendNotification: adminOnly,
}

// ClientID returns the id of the caller's client record, if linked.
func ClientID(user *model.User) (uint, bool) {
	if user == nil || user.Client == nil {
		return 0, false
	}
	return user.Client.ID, true
}

// Authorize decides whether user may perform action. ownerClientID is the id
// of the client owning the target resource; it is ignored for rules that do
// not involve ownership. A denial is always Forbidden: the caller is already
// authenticated at this point.
func Authorize(user *model.User, action Action, ownerClientID uint) error {
	if user == nil {
		return apperr.Unauthenticated("authentication required")
	}

	r, ok := policy[action]
	if !ok {
		return apperr.Forbidden("access denied")
	}

	switch r {
	case adminOnly:
		if !user.IsAdmin {
			return apperr.Forbidden("access denied: administrator role required")
		}
	case adminOrOwner:
		if user.IsAdmin {
			return nil
		}
		if id, linked := ClientID(user); !linked || id != ownerClientID {
			return apperr.Forbidden("access denied")
		}
	case selfService:
		if _, linked := ClientID(user); !linked {
			return apperr.Forbidden("access denied: no client record linked to this user")
		}
	}

	return nil
}
