// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/nephroclinic/clinic/db"
)

func newAuthTestApp() *routeTestApp {
	app := newRouteTestApp()
	app.Get("/auth", LoginForm)
	app.Post("/auth", Login)
	app.Get("/logout", Logout)
	app.Post("/account/password", ChangePassword)
	app.Get("/dashboard", RequireAuth, func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	app.Get("/dashboard/staff", RequireAuth, RequireAdmin, func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	return app
}

func stubStaffMember(t *testing.T, member *db.StaffMember, err error) {
	t.Helper()

	original := getStaffMemberFn
	getStaffMemberFn = func(context.Context, string) (*db.StaffMember, error) {
		return member, err
	}

	t.Cleanup(func() {
		getStaffMemberFn = original
	})
}

func testStaffMember(role db.Role) *db.StaffMember {
	return &db.StaffMember{
		User: db.User{ID: uuid.New(), Email: "staff@clinic.example", FullName: "Noha"},
		Role: role,
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestLoginFormShowsSetupHint(t *testing.T) {
	original := countStaffFn
	countStaffFn = func(context.Context) (int, error) { return 0, nil }

	t.Cleanup(func() {
		countStaffFn = original
	})

	app := newAuthTestApp()
	rec := performGET(t, app, "/auth")

	if rec.Code != http.StatusOK || app.rendered.name != "login" {
		t.Fatalf("unexpected render: status=%d template=%q", rec.Code, app.rendered.name)
	}
	if noStaff, _ := app.data["NoStaff"].(bool); !noStaff {
		t.Fatal("expected NoStaff hint when no staff exist")
	}
}

func TestLoginFormRedirectsSignedInStaff(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp()
	setStaffSession(app.session)

	rec := performGET(t, app, "/auth")
	assertRedirect(t, rec, "/dashboard")
}

//nolint:paralleltest // Overrides package-level seams.
func TestLogin(t *testing.T) {
	member := testStaffMember(db.RoleAdmin)

	original := authenticateFn
	authenticateFn = func(_ context.Context, email, password string) (*db.StaffMember, error) {
		if email == "staff@clinic.example" && password == "secret1" {
			return member, nil
		}
		return nil, db.ErrInvalidCredentials
	}

	t.Cleanup(func() {
		authenticateFn = original
	})

	app := newAuthTestApp()
	rec := performFormPOST(t, app, "/auth", url.Values{"email": {"staff@clinic.example"}, "password": {"wrong"}}, nil)

	assertRedirect(t, rec, "/auth")
	assertFlash(t, app.session, FlashError, "البريد الإلكتروني أو كلمة المرور غير صحيحة")

	if isAuthenticated(app.session) {
		t.Fatal("expected failed login to leave session unauthenticated")
	}

	app = newAuthTestApp()
	rec = performFormPOST(t, app, "/auth", url.Values{"email": {""}, "password": {"x"}}, nil)
	assertRedirect(t, rec, "/auth")

	app = newAuthTestApp()
	rec = performFormPOST(t, app, "/auth", url.Values{"email": {" staff@clinic.example "}, "password": {"secret1"}}, nil)

	assertRedirect(t, rec, "/dashboard")
	assertNoFlash(t, app.session)

	if app.session.ID() != "regenerated-session" {
		t.Fatal("expected session ID to be regenerated on login")
	}
	if userID, ok := getSessionUserID(app.session); !ok || userID != member.ID.String() {
		t.Fatalf("unexpected session user %q", userID)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp()
	setStaffSession(app.session)
	app.session.Set(db.SessionKeyVisitorID, "visitor")

	rec := performGET(t, app, "/logout")

	assertRedirect(t, rec, "/auth")

	if isAuthenticated(app.session) {
		t.Fatal("expected logout to clear authentication")
	}
	if app.session.Get(db.SessionKeyVisitorID) != "visitor" {
		t.Fatal("expected visitor id to survive logout")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp()
	rec := performGET(t, app, "/dashboard")

	assertRedirect(t, rec, "/auth")

	app = newAuthTestApp()
	setStaffSession(app.session)

	if rec := performGET(t, app, "/dashboard"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected signed-in staff to pass, got %d", rec.Code)
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestRequireAdmin(t *testing.T) {
	stubStaffMember(t, testStaffMember(db.RoleModerator), nil)

	app := newAuthTestApp()
	setStaffSession(app.session)

	rec := performGET(t, app, "/dashboard/staff")
	assertRedirect(t, rec, "/dashboard")
	assertFlash(t, app.session, FlashError, "هذه الصفحة متاحة للمدير فقط")

	stubStaffMember(t, testStaffMember(db.RoleAdmin), nil)

	app = newAuthTestApp()
	setStaffSession(app.session)

	if rec := performGET(t, app, "/dashboard/staff"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected admin to pass, got %d", rec.Code)
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestUserContextInjector(t *testing.T) {
	member := testStaffMember(db.RoleAdmin)
	stubStaffMember(t, member, nil)

	app := newRouteTestApp()
	app.Use(UserContextInjector())
	app.Get("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	performGET(t, app, "/")

	if authenticated, _ := app.data["IsAuthenticated"].(bool); authenticated {
		t.Fatal("expected anonymous request to be unauthenticated")
	}

	setStaffSession(app.session)
	performGET(t, app, "/")

	if got, _ := app.data["CurrentUser"].(*db.StaffMember); got != member {
		t.Fatalf("unexpected CurrentUser %#v", app.data["CurrentUser"])
	}
	if isAdmin, _ := app.data["IsAdmin"].(bool); !isAdmin {
		t.Fatal("expected IsAdmin for admin member")
	}
	if name := app.session.Get(db.SessionKeyUserName); name != "Noha" {
		t.Fatalf("expected session name refresh, got %#v", name)
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestChangePassword(t *testing.T) {
	var (
		changedFor string
		keptID     string
	)

	originalChange := changePasswordFn
	originalDestroy := destroyUserSessionsFn

	changePasswordFn = func(_ context.Context, userID, current, next string) error {
		if current != "old-pass" {
			return db.ErrInvalidCredentials
		}
		if len(next) < db.MinPasswordLength {
			return db.ErrPasswordTooShort
		}
		changedFor = userID
		return nil
	}
	destroyUserSessionsFn = func(_ context.Context, _ string, keepID string) (int, error) {
		keptID = keepID
		return 2, nil
	}

	t.Cleanup(func() {
		changePasswordFn = originalChange
		destroyUserSessionsFn = originalDestroy
	})

	tests := []struct {
		name      string
		form      url.Values
		wantType  FlashType
		wantFlash string
	}{
		{
			name:      "mismatch",
			form:      url.Values{"current_password": {"old-pass"}, "new_password": {"new-pass"}, "confirm_password": {"other"}},
			wantType:  FlashError,
			wantFlash: "كلمتا المرور غير متطابقتين",
		},
		{
			name:      "wrong current password",
			form:      url.Values{"current_password": {"nope"}, "new_password": {"new-pass"}, "confirm_password": {"new-pass"}},
			wantType:  FlashError,
			wantFlash: "كلمة المرور الحالية غير صحيحة",
		},
		{
			name:      "too short",
			form:      url.Values{"current_password": {"old-pass"}, "new_password": {"abc"}, "confirm_password": {"abc"}},
			wantType:  FlashError,
			wantFlash: "كلمة المرور يجب أن تكون 6 أحرف على الأقل",
		},
		{
			name:      "success",
			form:      url.Values{"current_password": {"old-pass"}, "new_password": {"new-pass"}, "confirm_password": {"new-pass"}},
			wantType:  FlashSuccess,
			wantFlash: "تم تغيير كلمة المرور بنجاح",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp()
			userID := setStaffSession(app.session)

			rec := performFormPOST(t, app, "/account/password", tt.form, nil)

			assertRedirect(t, rec, "/dashboard#account")
			assertFlash(t, app.session, tt.wantType, tt.wantFlash)

			if tt.wantType == FlashSuccess {
				if changedFor != userID {
					t.Fatalf("expected password change for %q, got %q", userID, changedFor)
				}
				if keptID != app.session.ID() {
					t.Fatalf("expected current session to be kept, got %q", keptID)
				}
			}
		})
	}
}
