/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/db"
)

var getStaffMemberFn = db.GetStaffMember

// UserContextInjector loads session user metadata into templates.
func UserContextInjector() flamego.Handler {
	return func(c flamego.Context, s session.Session, data template.Data) {
		authenticated := isAuthenticated(s)
		data["IsAuthenticated"] = authenticated
		if !authenticated {
			return
		}

		member, err := resolveSessionUser(c.Request().Context(), s)
		if err != nil {
			logger.Error("Failed to resolve session user", "error", err)
			return
		}

		data["CurrentUser"] = member
		data["IsAdmin"] = member.IsAdmin()
	}
}

// RequireAdmin blocks access for non-admin users.
func RequireAdmin(s session.Session, c flamego.Context) {
	member, err := resolveSessionUser(c.Request().Context(), s)
	if err != nil || !member.IsAdmin() {
		if err != nil {
			logAccessDenied(c, s, "not_admin", http.StatusSeeOther, "/dashboard", "error", err)
		} else {
			logAccessDenied(c, s, "not_admin", http.StatusSeeOther, "/dashboard")
		}
		SetErrorFlash(s, "هذه الصفحة متاحة للمدير فقط")
		c.Redirect("/dashboard", http.StatusSeeOther)
		return
	}
	c.Next()
}

// resolveSessionUser reloads the staff member on every request so revoked
// roles take effect immediately.
func resolveSessionUser(ctx context.Context, s session.Session) (*db.StaffMember, error) {
	userID, ok := getSessionUserID(s)
	if !ok {
		return nil, errSessionUserMissing
	}

	member, err := getStaffMemberFn(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.Set(db.SessionKeyUserName, member.FullName)

	return member, nil
}
