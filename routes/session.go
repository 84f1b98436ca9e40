/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"strings"

	"github.com/flamego/session"

	"github.com/nephroclinic/clinic/db"
)

func isAuthenticated(s session.Session) bool {
	authenticated, ok := s.Get(db.SessionKeyAuthenticated).(bool)
	return ok && authenticated
}

func getSessionUserID(s session.Session) (string, bool) {
	userID, ok := s.Get(db.SessionKeyUserID).(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", false
	}

	return userID, true
}

func setSessionUser(s session.Session, member *db.StaffMember) {
	s.Set(db.SessionKeyAuthenticated, true)
	s.Set(db.SessionKeyUserID, member.ID.String())
	s.Set(db.SessionKeyUserName, member.FullName)
}

func clearSessionUser(s session.Session) {
	s.Delete(db.SessionKeyAuthenticated)
	s.Delete(db.SessionKeyUserID)
	s.Delete(db.SessionKeyUserName)
}
