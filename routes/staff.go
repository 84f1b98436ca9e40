/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/db"
)

const staffPath = "/dashboard/staff"

var (
	listStaffFn       = db.ListStaff
	inviteModeratorFn = db.InviteModerator
	removeStaffFn     = db.RemoveStaff
)

// StaffList renders the admin staff page.
func StaffList(c flamego.Context, t template.Template, data template.Data) {
	setPageTitle(data, "فريق العمل")
	data["IsStaff"] = true
	data["MinPasswordLength"] = db.MinPasswordLength

	staff, err := listStaffFn(c.Request().Context())
	if err != nil {
		logger.Error("Error fetching staff", "error", err)
		data["Error"] = "تعذر تحميل فريق العمل"
	} else {
		data["Staff"] = staff
	}

	t.HTML(http.StatusOK, "staff")
}

func inviteErrorMessage(err error) string {
	switch {
	case errors.Is(err, db.ErrEmailRequired), errors.Is(err, db.ErrInvalidEmail):
		return "برجاء إدخال بريد إلكتروني صحيح"
	case errors.Is(err, db.ErrNameRequired):
		return "برجاء إدخال الاسم"
	case errors.Is(err, db.ErrPasswordTooShort):
		return "كلمة المرور يجب أن تكون 6 أحرف على الأقل"
	case errors.Is(err, db.ErrUserAlreadyStaff):
		return "هذا المستخدم لديه صلاحية بالفعل"
	default:
		return "تعذر إضافة المساعد"
	}
}

// InviteStaff creates or promotes a moderator account.
func InviteStaff(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "تعذر قراءة البيانات")
		c.Redirect(staffPath, http.StatusSeeOther)
		return
	}

	form := c.Request().Form

	member, created, err := inviteModeratorFn(c.Request().Context(), db.InviteModeratorInput{
		Email:    form.Get("email"),
		FullName: form.Get("name"),
		Password: form.Get("password"),
	})
	if err != nil {
		logger.Warn("Moderator invite rejected", "error", err)
		SetErrorFlash(s, inviteErrorMessage(err))
		c.Redirect(staffPath, http.StatusSeeOther)
		return
	}

	if created {
		SetSuccessFlash(s, "تم إنشاء حساب "+member.FullName+" كمساعد")
	} else {
		SetSuccessFlash(s, "تمت إضافة "+member.FullName+" كمساعد")
	}

	c.Redirect(staffPath, http.StatusSeeOther)
}

// RemoveStaffMember revokes a staff member's access and signs them out.
func RemoveStaffMember(c flamego.Context, s session.Session) {
	id := c.Param("id")

	if current, ok := getSessionUserID(s); ok && current == id {
		SetErrorFlash(s, "لا يمكنك إزالة حسابك")
		c.Redirect(staffPath, http.StatusSeeOther)
		return
	}

	if err := removeStaffFn(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, db.ErrCannotRemoveLastAdmin):
			SetErrorFlash(s, "لا يمكن إزالة آخر مدير")
		case errors.Is(err, db.ErrUserNotFound):
			SetErrorFlash(s, "المستخدم غير موجود")
		default:
			logger.Error("Error removing staff member", "user_id", id, "error", err)
			SetErrorFlash(s, "تعذر إزالة المستخدم")
		}
		c.Redirect(staffPath, http.StatusSeeOther)
		return
	}

	if _, err := destroyUserSessionsFn(c.Request().Context(), id, ""); err != nil {
		logger.Warn("Failed to sign out removed staff member", "user_id", id, "error", err)
	}

	SetSuccessFlash(s, "تمت إزالة المستخدم")
	c.Redirect(staffPath, http.StatusSeeOther)
}
