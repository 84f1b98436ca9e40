/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/db"
)

var (
	countStaffFn          = db.CountStaff
	authenticateFn        = db.Authenticate
	changePasswordFn      = db.ChangePassword
	destroyUserSessionsFn = func(ctx context.Context, userID, keepID string) (int, error) {
		return db.SessionStore().DestroyUserSessions(ctx, userID, keepID)
	}
)

// LoginForm renders the staff login page
func LoginForm(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	if isAuthenticated(s) {
		c.Redirect("/dashboard", http.StatusSeeOther)
		return
	}

	setPageTitle(data, "دخول الفريق")
	data["HeaderOnly"] = true

	count, err := countStaffFn(c.Request().Context())
	if err != nil {
		logger.Error("Error counting staff", "error", err)
	} else if count == 0 {
		data["NoStaff"] = true
	}

	t.HTML(http.StatusOK, "login")
}

// Login verifies staff credentials and starts a session
func Login(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing login form", "error", err)
		SetErrorFlash(s, "برجاء إدخال البريد الإلكتروني وكلمة المرور")
		c.Redirect("/auth", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(c.Request().Form.Get("email"))
	password := c.Request().Form.Get("password")

	if email == "" || password == "" {
		SetErrorFlash(s, "برجاء إدخال البريد الإلكتروني وكلمة المرور")
		c.Redirect("/auth", http.StatusSeeOther)
		return
	}

	member, err := authenticateFn(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			logger.Warn("Failed login attempt", "email", email, "ip", clientIP(c))
			SetErrorFlash(s, "البريد الإلكتروني أو كلمة المرور غير صحيحة")
		} else {
			logger.Error("Error authenticating staff", "error", err)
			SetErrorFlash(s, "حدث خطأ، برجاء المحاولة مرة أخرى")
		}

		c.Redirect("/auth", http.StatusSeeOther)
		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Error("Error regenerating session", "error", err)
		SetErrorFlash(s, "حدث خطأ، برجاء المحاولة مرة أخرى")
		c.Redirect("/auth", http.StatusSeeOther)
		return
	}

	setSessionUser(s, member)
	logger.Info("Staff signed in", "user_id", member.ID, "role", member.Role)

	c.Redirect("/dashboard", http.StatusSeeOther)
}

// Logout handles logout request
func Logout(s session.Session, c flamego.Context) {
	clearSessionUser(s)
	c.Redirect("/auth", http.StatusSeeOther)
}

// RequireAuth is a middleware that checks if user is authenticated
func RequireAuth(s session.Session, c flamego.Context) {
	if !isAuthenticated(s) {
		logAccessDenied(c, s, "unauthenticated", http.StatusSeeOther, "/auth")
		c.Redirect("/auth", http.StatusSeeOther)
		return
	}
	c.Next()
}

// ChangePassword updates the signed-in user's password and signs out their
// other sessions.
func ChangePassword(c flamego.Context, s session.Session) {
	const back = "/dashboard#account"

	userID, ok := getSessionUserID(s)
	if !ok {
		logAccessDenied(c, s, errSessionUserMissing.Error(), http.StatusSeeOther, "/auth")
		c.Redirect("/auth", http.StatusSeeOther)
		return
	}

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "تعذر قراءة البيانات")
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	form := c.Request().Form
	newPassword := form.Get("new_password")

	if newPassword != form.Get("confirm_password") {
		logger.Warn("Password change rejected", "user_id", userID, "reason", errPasswordMismatch)
		SetErrorFlash(s, "كلمتا المرور غير متطابقتين")
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	err := changePasswordFn(c.Request().Context(), userID, form.Get("current_password"), newPassword)

	switch {
	case errors.Is(err, db.ErrPasswordTooShort):
		SetErrorFlash(s, "كلمة المرور يجب أن تكون 6 أحرف على الأقل")
		c.Redirect(back, http.StatusSeeOther)
		return
	case errors.Is(err, db.ErrInvalidCredentials):
		SetErrorFlash(s, "كلمة المرور الحالية غير صحيحة")
		c.Redirect(back, http.StatusSeeOther)
		return
	case err != nil:
		logger.Error("Error changing password", "user_id", userID, "error", err)
		SetErrorFlash(s, "تعذر تغيير كلمة المرور")
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	if count, err := destroyUserSessionsFn(c.Request().Context(), userID, s.ID()); err != nil {
		logger.Warn("Failed to sign out other sessions", "user_id", userID, "error", err)
	} else if count > 0 {
		logger.Info("Signed out other sessions", "user_id", userID, "count", count)
	}

	SetSuccessFlash(s, "تم تغيير كلمة المرور بنجاح")
	c.Redirect(back, http.StatusSeeOther)
}
